//go:build darwin

package estimate

import (
	"os"
	"syscall"
	"time"
)

// fileTimestamp returns the earlier of a file's modification and birth
// times. Copy operations can reset mtime to the copy moment; the minimum
// tolerates that.
func fileTimestamp(info os.FileInfo) time.Time {
	mtime := info.ModTime()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return mtime
	}
	btime := time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	if btime.After(time.Time{}) && btime.Before(mtime) {
		return btime
	}
	return mtime
}
