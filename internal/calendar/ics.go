// Package calendar renders availability as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"scheduling-api/internal/model"
)

const (
	prodID     = "-//scheduling-api//availability//EN"
	propTransp = "TRANSP"
)

// Summaries written for free and busy slots.
const (
	SummaryAvailable = "Available"
	SummaryBusy      = "Busy"
)

// Build returns a calendar with one VEVENT per slot. Free slots are marked
// transparent so subscribing clients do not treat them as busy time.
func Build(userID string, slots []model.TimeSlot, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	for _, s := range slots {
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d@scheduling-api", userID, s.Start.Unix()))
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeStart, s.Start.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeEnd, s.End.UTC())
		if s.Available {
			ev.Props.SetText(ical.PropSummary, SummaryAvailable)
			ev.Props.SetText(propTransp, "TRANSPARENT")
		} else {
			ev.Props.SetText(ical.PropSummary, SummaryBusy)
			ev.Props.SetText(propTransp, "OPAQUE")
		}
		cal.Children = append(cal.Children, ev.Component)
	}
	return cal
}

// Write encodes the slots of userID to w.
func Write(w io.Writer, userID string, slots []model.TimeSlot) error {
	return ical.NewEncoder(w).Encode(Build(userID, slots, time.Now()))
}
