package main

import (
	"testing"
	"time"
)

func TestRecordExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"IMG_0001.JPG", "JPG"},
		{"clip.mp4", "mp4"},
		{"archive.tar.gz", "gz"},
		{".jpg", "jpg"},
		{"README", ""},
		{"trailing.", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Record{Name: tt.name}).Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordKind(t *testing.T) {
	if got := (Record{Name: "photo.HEIC"}).Kind(); got != KindImage {
		t.Errorf("photo.HEIC kind = %v, want image", got)
	}
	if got := (Record{Name: "folder.mov", IsDir: true}).Kind(); got != KindUnrecognized {
		t.Errorf("directory kind = %v, want unrecognized", got)
	}
}

func TestRecordSameEntry(t *testing.T) {
	a := Record{Name: "a.jpg", SourcePath: "/one/a.jpg"}
	b := Record{Name: "a.jpg", SourcePath: "/two/a.jpg"}
	c := Record{Name: "renamed.jpg", SourcePath: "/one/a.jpg"}

	if a.SameEntry(b) {
		t.Error("records with the same name in different folders must differ")
	}
	if !a.SameEntry(c) {
		t.Error("records with the same source path must be the same entry")
	}
}

func TestWithResolutionLeavesOriginalUntouched(t *testing.T) {
	date := time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)
	rec := Record{Name: "a.jpg", SourcePath: "/src/a.jpg"}

	got := rec.withResolution(resolution{captureDate: &date, category: CategoryImage, destPath: "image/x-a.jpg"})

	if rec.CaptureDate != nil || rec.DestPath != "" || rec.Category != "" {
		t.Errorf("original record was modified: %+v", rec)
	}
	if got.CaptureDate == nil || !got.CaptureDate.Equal(date) {
		t.Errorf("CaptureDate = %v, want %v", got.CaptureDate, date)
	}
	if got.CaptureDate == &date {
		t.Error("CaptureDate must not alias the resolver's value")
	}
	if got.DestPath != "image/x-a.jpg" || got.Category != CategoryImage {
		t.Errorf("unexpected resolution: %+v", got)
	}
}

func TestWithResolutionKeepsResolvedDate(t *testing.T) {
	date := time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)
	rec := Record{Name: "a.jpg", CaptureDate: &date}

	got := rec.withResolution(resolution{category: CategoryError, destPath: "error/a.jpg"})
	if got.CaptureDate == nil {
		t.Fatal("a resolved capture date must never be cleared")
	}
}

func TestRecordOutcome(t *testing.T) {
	date := time.Now()
	tests := []struct {
		name string
		rec  Record
		want Outcome
	}{
		{"unplanned", Record{Name: "a.jpg"}, OutcomePending},
		{"directory", Record{Name: "dir", IsDir: true, DestPath: "dir"}, OutcomeDirectory},
		{"dated", Record{Name: "a.jpg", CaptureDate: &date, DestPath: "image/a.jpg"}, OutcomeDated},
		{"unrecognized", Record{Name: "a.txt", DestPath: "error/a.txt"}, OutcomeUnrecognizedExtension},
		{"no metadata", Record{Name: "a.jpg", DestPath: "error/a.jpg"}, OutcomeMetadataUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Outcome(); got != tt.want {
				t.Errorf("Outcome() = %v, want %v", got, tt.want)
			}
		})
	}
}
