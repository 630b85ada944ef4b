package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
)

func TestReadWeekly(t *testing.T) {
	in := `
- day: Monday
  intervals:
    - start: "09:00"
      end: "12:00"
    - start: "13:00"
      end: "17:00"
- day: friday
  intervals:
    - {start: "10:00", end: "11:30"}
`
	w, err := readWeekly(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readWeekly: %v", err)
	}
	if len(w) != 2 || len(w[0].Intervals) != 2 {
		t.Fatalf("weekly = %+v", w)
	}
	if got := w[1].Intervals[0].End; got != availability.NewClock(11, 30) {
		t.Errorf("friday end = %v", got)
	}
}

func TestReadWeeklyRejects(t *testing.T) {
	tests := map[string]string{
		"bad clock":   "- day: Monday\n  intervals: [{start: \"9am\", end: \"12:00\"}]\n",
		"bad day":     "- day: Moonday\n  intervals: [{start: \"09:00\", end: \"12:00\"}]\n",
		"reversed":    "- day: Monday\n  intervals: [{start: \"12:00\", end: \"09:00\"}]\n",
		"not a list": "day: Monday\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := readWeekly(strings.NewReader(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWeeklyYAMLRoundTrip(t *testing.T) {
	w := availability.Weekly{{Day: "Tuesday", Intervals: []availability.Interval{
		{Start: availability.NewClock(8, 0), End: availability.NewClock(8, 30)},
	}}}
	var buf bytes.Buffer
	if err := writeWeekly(&buf, w); err != nil {
		t.Fatalf("writeWeekly: %v", err)
	}
	if !strings.Contains(buf.String(), "08:30") {
		t.Errorf("output missing clock text:\n%s", buf.String())
	}
	back, err := readWeekly(&buf)
	if err != nil {
		t.Fatalf("readWeekly: %v", err)
	}
	if back[0].Intervals[0] != w[0].Intervals[0] {
		t.Errorf("round trip = %+v", back)
	}
}

func TestWriteSlots(t *testing.T) {
	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	slots := []model.TimeSlot{
		{Start: day, End: day.Add(30 * time.Minute), Available: true},
		{Start: day.Add(30 * time.Minute), End: day.Add(time.Hour), Available: false},
	}
	var buf bytes.Buffer
	if err := writeSlots(&buf, slots); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "09:00") || !strings.Contains(lines[1], "free") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "busy") {
		t.Errorf("line 2 = %q", lines[2])
	}
}
