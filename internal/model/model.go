package model

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Event is a bookable meeting type owned by a host.
type Event struct {
	ID              string
	UserID          string
	Title           string
	Description     string
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e *Event) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// NormalizeStatus lowercases s and folds the "cancelled" spelling into
// StatusCanceled. The second return is false for unknown values.
func NormalizeStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return StatusScheduled, true
	case "confirmed":
		return StatusConfirmed, true
	case "canceled", "cancelled":
		return StatusCanceled, true
	}
	return Status(s), false
}

// Canceled reports whether the appointment no longer blocks the host's calendar.
func (s Status) Canceled() bool {
	n, _ := NormalizeStatus(string(s))
	return n == StatusCanceled
}

type Appointment struct {
	ID           string
	EventID      string
	UserID       string // host
	InviteeEmail string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Schedule is the persisted row holding a user's weekly availability as text.
type Schedule struct {
	UserID       string
	Availability string
	UpdatedAt    time.Time
}

type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
}

type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
}
