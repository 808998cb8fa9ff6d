package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newProgressFunc returns a progressFunc drawing a bar on w, or nil when w
// is not a terminal.
func newProgressFunc(w io.Writer, total int, description string) (progressFunc, func()) {
	if total == 0 || !isTerminal(w) {
		return nil, func() {}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	update := func(name string, index, total int) {
		bar.Describe(description + " " + name)
		_ = bar.Set(index)
	}
	return update, func() { _ = bar.Finish() }
}
