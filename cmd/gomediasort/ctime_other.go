//go:build !linux && !darwin

package main

import (
	"os"
	"time"
)

func creationTime(_ string, fi os.FileInfo) time.Time {
	return fi.ModTime()
}
