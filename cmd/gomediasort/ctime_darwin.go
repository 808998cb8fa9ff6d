//go:build darwin

package main

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the birth time of path, else the modification time.
func creationTime(_ string, fi os.FileInfo) time.Time {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fi.ModTime()
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
