//go:build linux

package estimate

import (
	"os"
	"syscall"
	"time"
)

// fileTimestamp returns the earlier of a file's modification and inode
// change times. Copy operations can reset mtime to the copy moment; the
// minimum tolerates that.
func fileTimestamp(info os.FileInfo) time.Time {
	mtime := info.ModTime()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return mtime
	}
	ctime := time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	if ctime.Before(mtime) {
		return ctime
	}
	return mtime
}
