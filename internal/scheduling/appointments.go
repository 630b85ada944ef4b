package scheduling

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
	"scheduling-api/internal/store"
)

// pastGrace tolerates clock skew between client and server.
const pastGrace = 5 * time.Minute

// CreateAppointment books a on the host's own calendar. Status defaults to
// scheduled.
func (s *Service) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return apperr.Invalid("times required")
	}
	if !a.EndTime.After(a.StartTime) {
		return apperr.Invalid("end must be after start")
	}
	if a.StartTime.Before(s.now().Add(-pastGrace)) {
		return apperr.Invalid("cannot book in the past")
	}
	if a.InviteeEmail != "" {
		if _, err := mail.ParseAddress(a.InviteeEmail); err != nil {
			return apperr.Invalid("invalid invitee email")
		}
	}
	if a.EventID != "" {
		if _, err := s.Event(ctx, a.UserID, a.EventID); err != nil {
			return err
		}
	}
	st := model.StatusScheduled
	if a.Status != "" {
		var ok bool
		if st, ok = model.NormalizeStatus(string(a.Status)); !ok {
			return apperr.Invalid("unknown status %q", a.Status)
		}
	}
	a.Status = st
	a.ID = uuid.New().String()

	if !a.Status.Canceled() {
		// app-level overlap check; the exclusion constraint catches races
		dup, err := s.repo.HasOverlap(ctx, a.UserID, a.StartTime, a.EndTime, "")
		if err != nil {
			return err
		}
		if dup {
			return apperr.ErrConflict
		}
	}
	return s.insert(ctx, a)
}

func (s *Service) insert(ctx context.Context, a *model.Appointment) error {
	err := s.repo.CreateAppointment(ctx, a)
	if errors.Is(err, store.ErrConflict) {
		return apperr.ErrConflict
	}
	return err
}

// Book is the public booking flow: an invitee takes eventID's duration
// starting at start, which must fall on the host's available slots.
func (s *Service) Book(ctx context.Context, eventID, inviteeEmail string, start time.Time) (*model.Appointment, error) {
	if eventID == "" {
		return nil, apperr.Invalid("event id required")
	}
	if _, err := mail.ParseAddress(inviteeEmail); err != nil {
		return nil, apperr.Invalid("invalid invitee email")
	}
	if start.IsZero() {
		return nil, apperr.Invalid("start time required")
	}
	if start.Before(s.now()) {
		return nil, apperr.Invalid("cannot book in the past")
	}
	ev, err := s.repo.GetEvent(ctx, eventID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	end := start.Add(ev.Duration())
	slots, err := s.slots(ctx, ev.UserID, start, end)
	if err != nil {
		return nil, err
	}
	if !availability.Covers(slots, start, end) {
		return nil, apperr.With(apperr.ErrConflict, "requested time is not available")
	}

	a := &model.Appointment{
		ID:           uuid.New().String(),
		EventID:      ev.ID,
		UserID:       ev.UserID,
		InviteeEmail: inviteeEmail,
		StartTime:    start,
		EndTime:      end,
		Status:       model.StatusScheduled,
	}
	if err := s.insert(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("appointment booked",
		zap.String("appointment_id", a.ID),
		zap.String("event_id", ev.ID),
		zap.String("host_id", ev.UserID),
		zap.Time("start", start),
	)
	return a, nil
}

func (s *Service) Appointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error) {
	if from.IsZero() {
		from = s.now().AddDate(0, 0, -30)
	}
	if to.IsZero() {
		to = s.now().AddDate(0, 2, 0)
	}
	if !to.After(from) {
		return nil, apperr.Invalid("range end must be after start")
	}
	return s.repo.ListAppointments(ctx, userID, from, to)
}

// Appointment returns the appointment only if userID is its host.
func (s *Service) Appointment(ctx context.Context, userID, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperr.Invalid("id required")
	}
	a, err := s.repo.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && a.UserID != userID) {
		return nil, apperr.ErrNotFound
	}
	return a, err
}

// SetAppointmentStatus moves an appointment to status, accepting either
// spelling of canceled. Reviving a canceled appointment re-checks conflicts.
func (s *Service) SetAppointmentStatus(ctx context.Context, userID, id, status string) (*model.Appointment, error) {
	st, ok := model.NormalizeStatus(status)
	if !ok {
		return nil, apperr.Invalid("unknown status %q", status)
	}
	a, err := s.Appointment(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a.Status.Canceled() && !st.Canceled() {
		dup, err := s.repo.HasOverlap(ctx, userID, a.StartTime, a.EndTime, a.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, apperr.ErrConflict
		}
	}
	err = s.repo.UpdateAppointmentStatus(ctx, id, userID, st)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, apperr.ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return nil, apperr.ErrConflict
	case err != nil:
		return nil, err
	}
	a.Status = st
	a.UpdatedAt = s.now()
	return a, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, userID, id string) error {
	if id == "" {
		return apperr.Invalid("id required")
	}
	err := s.repo.DeleteAppointment(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
