package timerange

import (
	"fmt"
	"time"
)

// InvalidRangeError reports a degenerate interval (start >= end).
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf(
		"invalid time range: start %s is not before end %s",
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
	)
}

// Range is a half-open interval [Start, End) of UTC instants.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New normalizes both instants to UTC and rejects zero or negative spans.
func New(start, end time.Time) (Range, error) {
	start = start.UTC()
	end = end.UTC()

	if !start.Before(end) {
		return Range{}, &InvalidRangeError{Start: start, End: end}
	}

	return Range{Start: start, End: end}, nil
}

// Overlaps reports whether the two ranges share at least one instant.
// Adjacency is not overlap: [a,b) and [b,c) are disjoint.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Contains reports whether t falls inside [Start, End).
func (r Range) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r Range) String() string {
	return fmt.Sprintf(
		"[%s, %s)",
		r.Start.Format(time.RFC3339),
		r.End.Format(time.RFC3339),
	)
}
