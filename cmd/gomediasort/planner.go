package main

import (
	"time"
)

// planPath returns the destination of rec relative to the destination root.
// Files with a date go to "{category}/{date}[-{identifier}]-{name}", files
// without one to "error/{name}". Directories keep their name.
func planPath(rec Record, date *time.Time, category Category, identifier, dateFormat string) string {
	if rec.IsDir {
		return rec.Name
	}

	if date == nil || category == CategoryError {
		return string(CategoryError) + "/" + rec.Name
	}

	if dateFormat == "" {
		dateFormat = defaultDateFormat
	}

	filename := formatDate(*date, dateFormat) + "-"
	if identifier != "" {
		filename += identifier + "-"
	}
	filename += rec.Name

	return string(category) + "/" + filename
}
