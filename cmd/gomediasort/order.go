package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortKey selects the attribute records are ordered by.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByDestination SortKey = "destination"
	SortByCaptureDate SortKey = "capture-date"
	SortByCreated     SortKey = "created"
	SortByModified    SortKey = "modified"
	SortBySize        SortKey = "size"
)

var sortKeys = []SortKey{SortByName, SortByDestination, SortByCaptureDate, SortByCreated, SortByModified, SortBySize}

func parseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(sortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// compareCaptureDates orders missing dates after every present date.
func compareCaptureDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

func compareByKey(a, b Record, key SortKey) int {
	switch key {
	case SortByName:
		return cmp.Compare(a.Name, b.Name)
	case SortByDestination:
		return cmp.Compare(a.DestPath, b.DestPath)
	case SortByCaptureDate:
		return compareCaptureDates(a.CaptureDate, b.CaptureDate)
	case SortByCreated:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByModified:
		return a.ModifiedAt.Compare(b.ModifiedAt)
	case SortBySize:
		return cmp.Compare(a.Size, b.Size)
	}
	return 0
}

// orderBy returns a stably sorted copy of records. Directories and files
// are grouped first: directories lead when ascending and trail when
// descending. Within a group the key decides, reversed when descending.
func orderBy(records []Record, key SortKey, ascending bool) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		if a.IsDir != b.IsDir {
			dirFirst := -1
			if !ascending {
				dirFirst = 1
			}
			if a.IsDir {
				return dirFirst
			}
			return -dirFirst
		}

		c := compareByKey(a, b, key)
		if !ascending {
			c = -c
		}
		return c
	})
	return out
}
