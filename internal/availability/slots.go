package availability

import (
	"time"

	"github.com/teambition/rrule-go"

	"scheduling-api/internal/model"
)

// SlotDuration is the fixed length of every generated slot.
const SlotDuration = 30 * time.Minute

var rruleDays = [...]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// ComputeSlots tiles the weekly template over every calendar day from start to
// end inclusive and marks each slot unavailable when it overlaps a
// non-canceled appointment. Days are taken in start's location. The result is
// chronological and never overlaps; start after end yields nothing.
func ComputeSlots(weekly Weekly, appts []model.Appointment, start, end time.Time) []model.TimeSlot {
	var out []model.TimeSlot
	for _, day := range Days(weekly, start, end) {
		for _, s := range daySlots(weekly, day) {
			s.Available = !conflicts(s, appts)
			out = append(out, s)
		}
	}
	return out
}

// Days returns the start of each local calendar day in [start, end] whose
// weekday has at least one entry in weekly.
func Days(weekly Weekly, start, end time.Time) []time.Time {
	if len(weekly) == 0 || start.After(end) {
		return nil
	}
	loc := start.Location()
	end = end.In(loc)

	var byDay []rrule.Weekday
	seen := map[time.Weekday]bool{}
	for _, e := range weekly {
		wd, ok := ParseWeekday(e.Day)
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		byDay = append(byDay, rruleDays[wd])
	}
	if len(byDay) == 0 {
		return nil
	}

	// walk civil dates in UTC: local midnight doesn't exist in zones whose
	// DST shift happens at 00:00
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		Until:     time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC),
		Byweekday: byDay,
	})
	if err != nil {
		// only reachable with out-of-range BYxxx values, which are never set here
		return nil
	}
	dates := r.All()
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}
	return out
}

func daySlots(weekly Weekly, day time.Time) []model.TimeSlot {
	var (
		out  []model.TimeSlot
		last time.Time
	)
	for _, w := range weekly.Windows(day.Weekday()) {
		limit := w.End.On(day)
		for s := w.Start.On(day); !s.Add(SlotDuration).After(limit); s = s.Add(SlotDuration) {
			if s.Before(last) {
				continue
			}
			out = append(out, model.TimeSlot{Start: s, End: s.Add(SlotDuration)})
			last = s.Add(SlotDuration)
		}
	}
	return out
}

func conflicts(s model.TimeSlot, appts []model.Appointment) bool {
	for _, a := range appts {
		if a.Status.Canceled() {
			continue
		}
		if s.Start.Before(a.EndTime) && s.End.After(a.StartTime) {
			return true
		}
	}
	return false
}

// Covers reports whether [start, end) is made of back-to-back available slots.
func Covers(slots []model.TimeSlot, start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}
	byStart := make(map[int64]model.TimeSlot, len(slots))
	for _, s := range slots {
		if s.Available {
			byStart[s.Start.UnixNano()] = s
		}
	}
	for at := start; at.Before(end); {
		s, ok := byStart[at.UnixNano()]
		if !ok {
			return false
		}
		at = s.End
	}
	return true
}
