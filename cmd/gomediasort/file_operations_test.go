package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScanDirectory(t *testing.T) {
	tempDir := t.TempDir()

	// Create test files
	testFiles := map[string]string{
		"test1.jpg": "jpeg",
		"test2.mp4": "video data",
		"test3.txt": "",
		".hidden":   "secret",
	}
	for name, content := range testFiles {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}

	// Create a subdirectory with a file that must not be listed
	subDir := filepath.Join(tempDir, "subdir")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "inner.jpg"), []byte("inner"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := scanDirectory(tempDir, false)
	if err != nil {
		t.Fatalf("scanDirectory failed: %v", err)
	}

	byName := make(map[string]Record)
	for _, rec := range records {
		byName[rec.Name] = rec
	}

	if len(records) != 4 {
		t.Errorf("Expected 4 entries, got %d: %v", len(records), names(records))
	}
	if _, ok := byName[".hidden"]; ok {
		t.Error("hidden file should have been skipped")
	}
	if _, ok := byName["inner.jpg"]; ok {
		t.Error("scan must not descend into subdirectories")
	}

	dir, ok := byName["subdir"]
	if !ok {
		t.Fatal("subdirectory missing from scan")
	}
	if !dir.IsDir || dir.Size != 0 {
		t.Errorf("subdir: IsDir=%v Size=%d", dir.IsDir, dir.Size)
	}

	jpg := byName["test1.jpg"]
	if jpg.IsDir || jpg.Size != 4 {
		t.Errorf("test1.jpg: IsDir=%v Size=%d", jpg.IsDir, jpg.Size)
	}
	if !filepath.IsAbs(jpg.SourcePath) || filepath.Base(jpg.SourcePath) != "test1.jpg" {
		t.Errorf("unexpected source path %q", jpg.SourcePath)
	}
	if jpg.ModifiedAt.IsZero() || jpg.CreatedAt.IsZero() {
		t.Error("timestamps should be populated")
	}
	for _, rec := range records {
		if rec.Planned() {
			t.Errorf("%s already has a destination", rec.Name)
		}
	}
}

func TestScanDirectoryIncludeHidden(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{".hidden.jpg", "visible.jpg"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	records, err := scanDirectory(tempDir, true)
	if err != nil {
		t.Fatalf("scanDirectory failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 entries, got %v", names(records))
	}
}

func TestScanDirectoryErrors(t *testing.T) {
	if _, err := scanDirectory("/non/existent/dir", false); err == nil {
		t.Error("Expected error for non-existent directory, but got none")
	}

	file := filepath.Join(t.TempDir(), "plain.jpg")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := scanDirectory(file, false); err == nil {
		t.Error("Expected error when source is a file, but got none")
	}

	records, err := scanDirectory(t.TempDir(), false)
	if err != nil {
		t.Fatalf("scanDirectory failed for empty directory: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected 0 entries in empty directory, but got %d", len(records))
	}
}

func TestCalculateXXHash(t *testing.T) {
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	checksum, err := calculateXXHash(testFile)
	if err != nil {
		t.Errorf("calculateXXHash failed: %v", err)
	}

	expectedChecksum := "0e6882304e9adbd5"
	if checksum != expectedChecksum {
		t.Errorf("Expected checksum %s, but got %s", expectedChecksum, checksum)
	}

	// Test with non-existent file
	if _, err := calculateXXHash(filepath.Join(tempDir, "non-existent.txt")); err == nil {
		t.Error("Expected error for non-existent file, but got none")
	}
}

func TestCopyFile(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src.jpg")
	dst := filepath.Join(tempDir, "dst.jpg")
	if err := os.WriteFile(src, []byte("image bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "image bytes" {
		t.Errorf("copied content = %q", data)
	}

	t.Run("refuses to overwrite", func(t *testing.T) {
		if err := os.WriteFile(dst, []byte("keep me"), 0644); err != nil {
			t.Fatal(err)
		}
		err := copyFile(src, dst)
		if !errors.Is(err, fs.ErrExist) {
			t.Fatalf("expected fs.ErrExist, got %v", err)
		}
		data, _ := os.ReadFile(dst)
		if string(data) != "keep me" {
			t.Errorf("existing destination was modified: %q", data)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		other := filepath.Join(tempDir, "other.jpg")
		if err := copyFile(filepath.Join(tempDir, "gone.jpg"), other); err == nil {
			t.Error("expected error for missing source")
		}
		if exists(other) {
			t.Error("destination created for missing source")
		}
	})
}

func TestCreationTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Lstat(path)
	if err != nil {
		t.Fatal(err)
	}

	got := creationTime(path, fi)
	if got.IsZero() {
		t.Fatal("creationTime returned zero time")
	}
	if got.After(fi.ModTime().Add(time.Second)) {
		t.Errorf("creation time %v is after modification time %v", got, fi.ModTime())
	}
}
