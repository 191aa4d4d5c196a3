package handlers

import (
	"errors"
	"time"
)

// The calendar widget sends wall-clock timestamps with no zone suffix.
// They are relabeled as UTC, never converted: the same relabeling is
// applied on the booking path and the query path, so overlap checks
// and calendar windows always agree.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

var errBadTimestamp = errors.New("unrecognized timestamp")

func parseNaiveUTC(s string) (time.Time, error) {
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errBadTimestamp
}
