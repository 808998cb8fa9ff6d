package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const listingTimeLayout = "2006-01-02 15:04"

// renderListing renders records as a table in the order given.
func renderListing(records []Record) string {
	tw := table.NewWriter()
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	tw.AppendHeader(table.Row{"Name", "New Path", "Capture Date", "Created", "Modified", "Size"})

	for _, rec := range records {
		tw.AppendRow(table.Row{
			rec.Name,
			rec.DestPath,
			formatOptionalTime(rec.CaptureDate),
			rec.CreatedAt.Format(listingTimeLayout),
			rec.ModifiedAt.Format(listingTimeLayout),
			formatSize(rec),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.Format(listingTimeLayout)
}

func formatSize(rec Record) string {
	if rec.IsDir {
		return "--"
	}
	return humanize.Bytes(uint64(rec.Size))
}
