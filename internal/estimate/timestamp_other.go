//go:build !linux && !darwin && !windows

package estimate

import (
	"os"
	"time"
)

// fileTimestamp falls back to mtime on platforms without a portable
// creation time.
func fileTimestamp(info os.FileInfo) time.Time {
	return info.ModTime()
}
