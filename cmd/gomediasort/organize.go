package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

const lockFileName = ".gomediasort.lock"

var errLockHeld = errors.New("destination is locked by another gomediasort run")

// CopyStatus is the outcome of copying one planned record.
type CopyStatus string

const (
	StatusCopied  CopyStatus = "copied"
	StatusExists  CopyStatus = "exists"
	StatusFailed  CopyStatus = "failed"
	StatusSkipped CopyStatus = "skipped"
	StatusDryRun  CopyStatus = "dry-run"
)

type copyResult struct {
	Source string
	Dest   string
	Status CopyStatus
	Err    error
}

type copySummary struct {
	Results     []copyResult
	Copied      int
	Exists      int
	Failed      int
	Skipped     int
	Deleted     int
	CopiedBytes int64
}

type copyOptions struct {
	DryRun          bool
	Verify          bool
	DeleteOriginals bool
	OnProgress      progressFunc
}

// organizeMedia scans the source, plans every entry, lists the plan and
// copies the files into the destination.
func organizeMedia(cfg config, logger zerolog.Logger, stdout io.Writer) error {
	logger.Debug().
		Str("source", cfg.SourceDir).
		Str("dest", cfg.DestDir).
		Str("identifier", cfg.Identifier).
		Str("date_format", cfg.DateFormat).
		Bool("dry_run", cfg.DryRun).
		Msg("configuration")

	records, err := scanDirectory(cfg.SourceDir, cfg.IncludeHidden)
	if err != nil {
		return fmt.Errorf("failed to scan source: %w", err)
	}
	logger.Info().Int("entries", len(records)).Str("source", cfg.SourceDir).Msg("scanned")

	p := newPipeline(logger, statLookup{}, cfg.Workers)
	onProgress, finish := newProgressFunc(os.Stderr, len(records), "planning")
	planned := p.run(records, cfg.Identifier, cfg.DateFormat, onProgress)
	finish()

	key, err := parseSortKey(cfg.SortBy)
	if err != nil {
		return err
	}
	ordered := orderBy(planned, key, !cfg.Descending)

	if cfg.DryRun || cfg.Verbose {
		fmt.Fprintln(stdout, renderListing(ordered))
	}

	onCopy, finishCopy := newProgressFunc(os.Stderr, len(ordered), "copying")
	summary, err := copyPlanned(ordered, cfg.DestDir, copyOptions{
		DryRun:          cfg.DryRun,
		Verify:          cfg.VerifyCopies,
		DeleteOriginals: cfg.DeleteOriginals,
		OnProgress:      onCopy,
	}, logger)
	finishCopy()
	if err != nil {
		return fmt.Errorf("failed to copy files: %w", err)
	}

	logger.Info().
		Int("copied", summary.Copied).
		Int("exists", summary.Exists).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Int("deleted", summary.Deleted).
		Str("size", humanize.Bytes(uint64(summary.CopiedBytes))).
		Msg("done")

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to copy", summary.Failed, len(summary.Results))
	}
	return nil
}

// copyPlanned copies each planned file to destRoot/DestPath. Existing
// destinations are never overwritten. Directories and unplanned records are
// skipped.
func copyPlanned(records []Record, destRoot string, opts copyOptions, logger zerolog.Logger) (copySummary, error) {
	var summary copySummary

	if !opts.DryRun {
		if err := os.MkdirAll(destRoot, 0755); err != nil {
			return summary, fmt.Errorf("failed to create destination %s: %w", destRoot, err)
		}

		lock := flock.New(filepath.Join(destRoot, lockFileName))
		ok, err := lock.TryLock()
		if err != nil {
			return summary, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return summary, errLockHeld
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn().Err(err).Msg("failed to release destination lock")
			}
			os.Remove(lock.Path())
		}()

		for _, c := range []Category{CategoryImage, CategoryVideo, CategoryError} {
			dir := filepath.Join(destRoot, string(c))
			if err := os.MkdirAll(dir, 0755); err != nil {
				return summary, fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	for i, rec := range records {
		res := copyRecord(rec, destRoot, opts, logger)
		summary.Results = append(summary.Results, res)

		switch res.Status {
		case StatusCopied:
			summary.Copied++
			summary.CopiedBytes += rec.Size
			if opts.DeleteOriginals {
				if err := os.Remove(rec.SourcePath); err != nil {
					logger.Warn().Str("path", rec.SourcePath).Err(err).Msg("failed to delete original")
				} else {
					summary.Deleted++
				}
			}
		case StatusExists:
			summary.Exists++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}

		if opts.OnProgress != nil {
			opts.OnProgress(rec.Name, i+1, len(records))
		}
	}

	return summary, nil
}

func copyRecord(rec Record, destRoot string, opts copyOptions, logger zerolog.Logger) copyResult {
	res := copyResult{Source: rec.SourcePath}
	if rec.IsDir || !rec.Planned() {
		res.Status = StatusSkipped
		return res
	}

	res.Dest = filepath.Join(destRoot, filepath.FromSlash(rec.DestPath))
	log := logger.With().Str("source", rec.SourcePath).Str("dest", res.Dest).Logger()

	if opts.DryRun {
		if exists(res.Dest) {
			res.Status = StatusExists
		} else {
			res.Status = StatusDryRun
		}
		log.Debug().Str("status", string(res.Status)).Msg("dry run")
		return res
	}

	// Date patterns may contain path separators.
	if err := os.MkdirAll(filepath.Dir(res.Dest), 0755); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("failed to create directory for %s: %w", res.Dest, err)
		log.Error().Err(res.Err).Msg("copy failed")
		return res
	}

	if err := copyFile(rec.SourcePath, res.Dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			res.Status = StatusExists
			log.Info().Msg("destination already exists, not overwriting")
			return res
		}
		res.Status = StatusFailed
		res.Err = err
		log.Error().Err(err).Msg("copy failed")
		return res
	}

	if opts.Verify {
		if err := verifyCopy(rec.SourcePath, res.Dest); err != nil {
			os.Remove(res.Dest)
			res.Status = StatusFailed
			res.Err = err
			log.Error().Err(err).Msg("verification failed")
			return res
		}
	}

	res.Status = StatusCopied
	log.Debug().Msg("copied")
	return res
}

func verifyCopy(src, dst string) error {
	srcSum, err := calculateXXHash(src)
	if err != nil {
		return fmt.Errorf("hashing source: %w", err)
	}
	dstSum, err := calculateXXHash(dst)
	if err != nil {
		return fmt.Errorf("hashing destination: %w", err)
	}
	if srcSum != dstSum {
		return fmt.Errorf("checksum mismatch: %s != %s", srcSum, dstSum)
	}
	return nil
}
