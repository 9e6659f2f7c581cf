//go:build windows

package estimate

import (
	"os"
	"syscall"
	"time"
)

// fileTimestamp returns the earlier of a file's modification and creation
// times. Copy operations can reset mtime to the copy moment; the minimum
// tolerates that.
func fileTimestamp(info os.FileInfo) time.Time {
	mtime := info.ModTime()
	st, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return mtime
	}
	created := time.Unix(0, st.CreationTime.Nanoseconds())
	if created.Before(mtime) {
		return created
	}
	return mtime
}
