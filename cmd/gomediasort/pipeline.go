package main

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// progressFunc is told about each record once it has been planned. index
// is 1-based.
type progressFunc func(name string, index, total int)

// pipeline plans the destination of every record of a scan.
type pipeline struct {
	dates   *captureDateResolver
	live    *livePhotoResolver
	lookup  SiblingLookup
	workers int
	logger  zerolog.Logger
}

func newPipeline(logger zerolog.Logger, lookup SiblingLookup, workers int) *pipeline {
	dates := newCaptureDateResolver(logger)
	return &pipeline{
		dates:   dates,
		live:    &livePhotoResolver{dates: dates, logger: logger},
		lookup:  lookup,
		workers: workers,
		logger:  logger,
	}
}

// plan resolves and plans a single record.
func (p *pipeline) plan(rec Record, identifier, dateFormat string) Record {
	if rec.IsDir {
		return rec.withResolution(resolution{destPath: planPath(rec, nil, "", identifier, dateFormat)})
	}

	date, category := p.dates.resolve(rec)
	if category == CategoryVideo {
		date, category = p.live.resolve(rec, date, category, p.lookup)
	}

	return rec.withResolution(resolution{
		captureDate: date,
		category:    category,
		destPath:    planPath(rec, date, category, identifier, dateFormat),
	})
}

// run plans every record and returns the annotated copies in input order.
// The input slice is not modified. A record whose metadata cannot be read
// is routed to the error folder; run itself does not fail.
func (p *pipeline) run(records []Record, identifier, dateFormat string, onProgress progressFunc) []Record {
	out := make([]Record, len(records))
	total := len(records)

	if p.workers <= 1 {
		for i, rec := range records {
			out[i] = p.plan(rec, identifier, dateFormat)
			p.report(onProgress, out[i], i+1, total)
		}
	} else {
		var mu sync.Mutex
		done := 0
		var g errgroup.Group
		g.SetLimit(p.workers)
		for i, rec := range records {
			i, rec := i, rec
			g.Go(func() error {
				out[i] = p.plan(rec, identifier, dateFormat)
				mu.Lock()
				done++
				p.report(onProgress, out[i], done, total)
				mu.Unlock()
				return nil
			})
		}
		g.Wait()
	}

	counts := make(map[Outcome]int)
	categories := make(map[Category]int)
	for _, rec := range out {
		counts[rec.Outcome()]++
		if !rec.IsDir {
			categories[categoryOfDest(rec)]++
		}
	}
	p.logger.Info().
		Int("records", total).
		Int("image", categories[CategoryImage]).
		Int("video", categories[CategoryVideo]).
		Int("error", categories[CategoryError]).
		Int("directories", counts[OutcomeDirectory]).
		Msg("plan complete")

	return out
}

func (p *pipeline) report(onProgress progressFunc, rec Record, index, total int) {
	p.logger.Debug().
		Str("file", rec.Name).
		Str("dest", rec.DestPath).
		Int("index", index).
		Int("total", total).
		Msg("planned")
	if onProgress != nil {
		onProgress(rec.Name, index, total)
	}
}

// categoryOfDest is the root folder a planned file will actually land in,
// which is error for an image-classified file that has no date.
func categoryOfDest(rec Record) Category {
	if rec.CaptureDate == nil {
		return CategoryError
	}
	return rec.Category
}
