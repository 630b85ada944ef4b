package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrInvalidFormat = errors.New("invalid availability data format")

// Clock is a wall-clock time of day in minutes since midnight.
// 24:00 is accepted as the end of the day.
type Clock int

func NewClock(hour, minute int) Clock { return Clock(hour*60 + minute) }

func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' || !digits(s[:2]) || !digits(s[3:]) {
		return 0, fmt.Errorf("%w: bad time %q", ErrInvalidFormat, s)
	}
	h, m := int(s[0]-'0')*10+int(s[1]-'0'), int(s[3]-'0')*10+int(s[4]-'0')
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: time out of range %q", ErrInvalidFormat, s)
	}
	return NewClock(h, m), nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (c Clock) Hour() int { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute()) }

func (c Clock) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// On returns the absolute instant of c on the calendar day of d, in d's location.
func (c Clock) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, d.Location())
}

type Interval struct {
	Start Clock `json:"start" yaml:"start"`
	End   Clock `json:"end" yaml:"end"`
}

// DayAvailability is one entry of the weekly template. Day is a weekday name
// matched case-insensitively ("monday", "Tuesday", ...).
type DayAvailability struct {
	Day       string     `json:"day" yaml:"day"`
	Intervals []Interval `json:"intervals" yaml:"intervals"`
}

// Weekly is a recurring template of open windows per day of week.
type Weekly []DayAvailability

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ParseWeekday(s string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// ParseWeekly decodes the stored textual form of a weekly template.
func ParseWeekly(text string) (Weekly, error) {
	var w Weekly
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		if errors.Is(err, ErrInvalidFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	for _, e := range w {
		if _, ok := ParseWeekday(e.Day); !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidFormat, e.Day)
		}
	}
	return w, nil
}

// Encode renders w in the stored textual form read by ParseWeekly.
func (w Weekly) Encode() (string, error) {
	if w == nil {
		w = Weekly{}
	}
	b, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Windows returns every interval configured for wd across all matching
// entries, ordered by start.
func (w Weekly) Windows(wd time.Weekday) []Interval {
	var out []Interval
	for _, e := range w {
		if d, ok := ParseWeekday(e.Day); ok && d == wd {
			out = append(out, e.Intervals...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Validate enforces the write-time invariants: known days, start before end,
// and no overlapping windows within one day of week.
func (w Weekly) Validate() error {
	for _, e := range w {
		if _, ok := ParseWeekday(e.Day); !ok {
			return fmt.Errorf("unknown day %q", e.Day)
		}
		for _, iv := range e.Intervals {
			if iv.Start >= iv.End {
				return fmt.Errorf("%s: start %s must be before end %s", e.Day, iv.Start, iv.End)
			}
		}
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		win := w.Windows(wd)
		for i := 1; i < len(win); i++ {
			if win[i].Start < win[i-1].End {
				return fmt.Errorf("%s: window %s-%s overlaps %s-%s", strings.ToLower(wd.String()),
					win[i].Start, win[i].End, win[i-1].Start, win[i-1].End)
			}
		}
	}
	return nil
}
