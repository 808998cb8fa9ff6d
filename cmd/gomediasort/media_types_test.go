package main

import (
	"testing"
)

// TestGetMediaTypeInfo tests the getMediaTypeInfo function
func TestGetMediaTypeInfo(t *testing.T) {
	testCases := []struct {
		name         string
		ext          string
		expectedKind MediaKind
		expectedType FileType
	}{
		{"JPEG file", "jpg", KindImage, JPEG},
		{"PNG file", "png", KindImage, PNG},
		{"HEIC file", "heic", KindImage, HEIF},
		{"TIF file", "tif", KindImage, TIFF},
		{"RAW file", "cr2", KindImage, RAW},
		{"MP4 video", "mp4", KindVideo, MP4},
		{"MOV video", "mov", KindVideo, MOV},
		{"M4V video", "m4v", KindVideo, M4V},

		// Test different extensions for the same type
		{"JPEG alternate extension", "jpeg", KindImage, JPEG},

		// Test case sensitivity
		{"Uppercase extension", "PNG", KindImage, PNG},
		{"Mixed case extension", "Mp4", KindVideo, MP4},

		// Test unknown extensions
		{"Unknown extension", "xyz", KindUnrecognized, ""},
		{"Text file", "txt", KindUnrecognized, ""},

		// Test no extension
		{"No extension", "", KindUnrecognized, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, fileType := getMediaTypeInfo(tc.ext)

			if kind != tc.expectedKind {
				t.Errorf("Expected kind %v, got %v", tc.expectedKind, kind)
			}
			if fileType != tc.expectedType {
				t.Errorf("Expected file type %v, got %v", tc.expectedType, fileType)
			}
		})
	}
}

// TestFileTypesCompleteness checks that every FileType constant is in the fileTypes slice
func TestFileTypesCompleteness(t *testing.T) {
	allFileTypes := []FileType{
		JPEG, PNG, GIF, BMP, TIFF, WEBP, HEIF,
		RAW,
		MP4, MOV, M4V, AVI, MKV, THREEGP, THREEG2, MTS,
	}

	for _, fileType := range allFileTypes {
		found := false
		for _, ft := range fileTypes {
			if ft.FileType == fileType {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("FileType %v is not included in the fileTypes slice", fileType)
		}
	}
}

func TestNoExtensionMapsToTwoTypes(t *testing.T) {
	seen := make(map[string]FileType)
	for _, ft := range fileTypes {
		for _, ext := range ft.Extensions {
			if prev, ok := seen[ext]; ok {
				t.Errorf("extension %q listed for both %v and %v", ext, prev, ft.FileType)
			}
			seen[ext] = ft.FileType
		}
	}
}

func TestLivePhotoCompanionsAreImages(t *testing.T) {
	for _, ext := range livePhotoCompanions {
		if kindForExtension(ext) != KindImage {
			t.Errorf("companion extension %s is not an image extension", ext)
		}
	}
}

func TestCategoryForKind(t *testing.T) {
	tests := []struct {
		kind MediaKind
		want Category
	}{
		{KindImage, CategoryImage},
		{KindVideo, CategoryVideo},
		{KindUnrecognized, CategoryError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := categoryForKind(tt.kind); got != tt.want {
				t.Errorf("categoryForKind(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}
