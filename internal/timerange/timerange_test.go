package timerange

import (
	"errors"
	"testing"
	"time"
)

func mustRange(t *testing.T, start, end time.Time) Range {
	t.Helper()
	r, err := New(start, end)
	if err != nil {
		t.Fatalf("new range: %v", err)
	}
	return r
}

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestNewRejectsDegenerateRanges(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"equal", at(10, 0), at(10, 0)},
		{"reversed", at(11, 0), at(10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.start, tt.end)
			var ire *InvalidRangeError
			if !errors.As(err, &ire) {
				t.Fatalf("want InvalidRangeError, got %v", err)
			}
		})
	}
}

func TestNewNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	r := mustRange(t,
		time.Date(2025, 3, 10, 13, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 14, 0, 0, 0, loc),
	)

	if got := r.Start; !got.Equal(at(10, 0)) || got.Location() != time.UTC {
		t.Fatalf("start not normalized: %v", got)
	}
	if got := r.End; !got.Equal(at(11, 0)) || got.Location() != time.UTC {
		t.Fatalf("end not normalized: %v", got)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"identical", mustRange(t, at(10, 0), at(11, 0)), mustRange(t, at(10, 0), at(11, 0)), true},
		{"partial", mustRange(t, at(10, 0), at(11, 0)), mustRange(t, at(10, 30), at(11, 30)), true},
		{"contained", mustRange(t, at(10, 0), at(12, 0)), mustRange(t, at(10, 30), at(11, 0)), true},
		{"adjacent", mustRange(t, at(10, 0), at(11, 0)), mustRange(t, at(11, 0), at(12, 0)), false},
		{"disjoint", mustRange(t, at(10, 0), at(11, 0)), mustRange(t, at(12, 0), at(13, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	r := mustRange(t, at(9, 0), at(9, 30))
	if !r.Overlaps(r) {
		t.Fatal("a valid range must overlap itself")
	}
}

func TestContains(t *testing.T) {
	r := mustRange(t, at(10, 0), at(11, 0))

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start inclusive", at(10, 0), true},
		{"middle", at(10, 30), true},
		{"end exclusive", at(11, 0), false},
		{"before", at(9, 59), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.at); got != tt.want {
				t.Fatalf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	r := mustRange(t, at(10, 0), at(10, 30))
	if got := r.Duration(); got != 30*time.Minute {
		t.Fatalf("duration = %v, want 30m", got)
	}
}
