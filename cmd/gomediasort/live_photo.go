package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// livePhotoCompanions is the order in which still-image companions of a
// video are checked. The first one found wins.
var livePhotoCompanions = []string{"JPG", "HEIC", "JPEG", "TIF"}

// SiblingLookup reports whether a file exists. Implementations must not
// create, lock or reserve the path.
type SiblingLookup interface {
	Exists(path string) bool
}

// statLookup asks the filesystem.
type statLookup struct{}

func (statLookup) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// livePhotoResolver files a live-photo video with its still image.
type livePhotoResolver struct {
	dates  *captureDateResolver
	logger zerolog.Logger
}

// siblingCandidates lists the companion paths to check for a video, in
// priority order. Each companion extension is tried in the letter case of
// the video's own extension first.
func siblingCandidates(sourcePath, videoExt string) []string {
	base := strings.TrimSuffix(sourcePath, "."+videoExt)
	lowerFirst := videoExt == strings.ToLower(videoExt) && videoExt != strings.ToUpper(videoExt)

	out := make([]string, 0, 2*len(livePhotoCompanions))
	for _, ext := range livePhotoCompanions {
		upper, lower := ext, strings.ToLower(ext)
		if lowerFirst {
			out = append(out, base+"."+lower, base+"."+upper)
		} else {
			out = append(out, base+"."+upper, base+"."+lower)
		}
	}
	return out
}

// resolve returns the date and category for rec given what the capture
// date resolver found for it. Only videos are considered.
func (r *livePhotoResolver) resolve(rec Record, date *time.Time, category Category, lookup SiblingLookup) (*time.Time, Category) {
	ext := rec.Extension()
	if rec.IsDir || kindForExtension(ext) != KindVideo {
		return date, category
	}

	for _, sibling := range siblingCandidates(rec.SourcePath, ext) {
		if !lookup.Exists(sibling) {
			continue
		}

		siblingDate := r.dates.imageDate(sibling)
		r.logger.Debug().
			Str("video", rec.Name).
			Str("still", filepath.Base(sibling)).
			Bool("dated", siblingDate != nil).
			Msg("live photo companion found")
		return siblingDate, CategoryImage
	}

	return date, category
}
