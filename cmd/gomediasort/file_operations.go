package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// scanDirectory lists one level of sourceDir. Directories are reported but
// not descended into. Hidden entries are skipped unless includeHidden is set.
func scanDirectory(sourceDir string, includeHidden bool) ([]Record, error) {
	// Check if the source directory exists
	info, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source directory does not exist: %w", err)
		}
		return nil, fmt.Errorf("error accessing source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", sourceDir)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("error reading source directory %s: %w", sourceDir, err)
	}

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("error resolving source directory %s: %w", sourceDir, err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if !includeHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(absDir, entry.Name())
		fi, err := os.Lstat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %q: %w", path, err)
		}

		rec := Record{
			Name:       entry.Name(),
			SourcePath: path,
			CreatedAt:  creationTime(path, fi),
			ModifiedAt: fi.ModTime(),
			IsDir:      fi.IsDir(),
		}
		if !rec.IsDir {
			rec.Size = fi.Size()
		}
		records = append(records, rec)
	}

	return records, nil
}

func exists(destPath string) bool {
	_, err := os.Stat(destPath)
	return !os.IsNotExist(err)
}

func calculateXXHash(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

// copyFile copies src to dst and fails if dst already exists.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		os.Remove(dst)
		return err
	}
	return destFile.Close()
}
