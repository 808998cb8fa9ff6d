package main

import (
	"strings"
	"time"
)

// Record describes one entry of the source folder together with the
// results of planning it.
type Record struct {
	Name       string
	SourcePath string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Size       int64
	IsDir      bool

	// Set by the pipeline. CaptureDate stays nil when no date was resolved.
	CaptureDate *time.Time
	Category    Category
	DestPath    string
}

// Outcome summarizes how a record was planned.
type Outcome string

const (
	OutcomePending               Outcome = "pending"
	OutcomeDirectory             Outcome = "directory"
	OutcomeDated                 Outcome = "dated"
	OutcomeUnrecognizedExtension Outcome = "unrecognized-extension"
	OutcomeMetadataUnavailable   Outcome = "metadata-unavailable"
)

// resolution is what the resolvers and the planner derive for a record.
type resolution struct {
	captureDate *time.Time
	category    Category
	destPath    string
}

// Extension returns the part of the name after the last dot, or "" when
// there is no dot or nothing follows it.
func (r Record) Extension() string {
	i := strings.LastIndexByte(r.Name, '.')
	if i < 0 || i == len(r.Name)-1 {
		return ""
	}
	return r.Name[i+1:]
}

// Kind classifies the record by extension. Directories are unrecognized.
func (r Record) Kind() MediaKind {
	if r.IsDir {
		return KindUnrecognized
	}
	return kindForExtension(r.Extension())
}

// SameEntry reports whether both records describe the same filesystem entry.
func (r Record) SameEntry(other Record) bool {
	return r.SourcePath == other.SourcePath
}

// Planned reports whether the pipeline has assigned a destination.
func (r Record) Planned() bool {
	return r.DestPath != ""
}

// Outcome reports why a planned record ended up where it did.
func (r Record) Outcome() Outcome {
	switch {
	case !r.Planned():
		return OutcomePending
	case r.IsDir:
		return OutcomeDirectory
	case r.CaptureDate != nil:
		return OutcomeDated
	case r.Kind() == KindUnrecognized:
		return OutcomeUnrecognizedExtension
	default:
		return OutcomeMetadataUnavailable
	}
}

// withResolution returns a copy of r annotated with res. A capture date
// already present on r is kept when res carries none.
func (r Record) withResolution(res resolution) Record {
	out := r
	if res.captureDate != nil {
		d := *res.captureDate
		out.CaptureDate = &d
	}
	out.Category = res.category
	out.DestPath = res.destPath
	return out
}
