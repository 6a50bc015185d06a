package age

import (
	"testing"
	"time"
)

func TestAgeData(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		createdAt time.Time
		want      time.Duration
		ok        bool
	}{
		{name: "unset", createdAt: time.Time{}, want: 0, ok: false},
		{name: "past", createdAt: now.Add(-90 * time.Minute), want: 90 * time.Minute, ok: true},
		{name: "now", createdAt: now, want: 0, ok: true},
		{name: "future clamps", createdAt: now.Add(time.Hour), want: 0, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AgeData(tc.createdAt, now)
			if ok != tc.ok {
				t.Fatalf("expected ok %v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDurationData(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-10 * time.Minute)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  time.Duration
		ok    bool
	}{
		{name: "no start", end: now, want: 0, ok: false},
		{name: "finished", start: start, end: start.Add(3 * time.Minute), want: 3 * time.Minute, ok: true},
		{name: "running uses now", start: start, want: 10 * time.Minute, ok: true},
		{name: "end before start clamps", start: start, end: start.Add(-time.Minute), want: 0, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DurationData(tc.start, tc.end, now)
			if ok != tc.ok {
				t.Fatalf("expected ok %v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
