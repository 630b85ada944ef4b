package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
	"scheduling-api/internal/store"
)

// MaxRangeDays bounds a single availability query.
const MaxRangeDays = 366

type ScheduleRepository interface {
	ScheduleByUser(ctx context.Context, userID string) (*model.Schedule, error)
	UpsertSchedule(ctx context.Context, sc *model.Schedule) error
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error)
	BlockingAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error)
	ListAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id, userID string, st model.Status) error
	DeleteAppointment(ctx context.Context, id, userID string) error
}

type EventRepository interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context, userID string) ([]model.Event, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id, userID string) error
}

// Repository is the persistence capability set the service needs.
// *store.Store satisfies it.
type Repository interface {
	ScheduleRepository
	AppointmentRepository
	EventRepository
}

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func New(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Availability computes the user's free/busy slots over r.
func (s *Service) Availability(ctx context.Context, userID string, r model.DateRange) ([]model.TimeSlot, error) {
	if userID == "" {
		return nil, apperr.Invalid("user id required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return nil, apperr.Invalid("start and end dates required")
	}
	if r.EndDate.Sub(r.StartDate) > MaxRangeDays*24*time.Hour {
		return nil, apperr.Invalid("date range longer than %d days", MaxRangeDays)
	}
	slots, err := s.slots(ctx, userID, r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}
	s.log.Debug("availability computed",
		zap.String("user_id", userID),
		zap.Time("start", r.StartDate),
		zap.Time("end", r.EndDate),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}

// slots loads the weekly model and blocking appointments and runs the engine.
func (s *Service) slots(ctx context.Context, userID string, start, end time.Time) ([]model.TimeSlot, error) {
	weekly, err := s.Schedule(ctx, userID)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, nil
	}

	loc := start.Location()
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	e := end.In(loc)
	to := time.Date(e.Year(), e.Month(), e.Day()+1, 0, 0, 0, 0, loc)

	appts, err := s.repo.BlockingAppointments(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return availability.ComputeSlots(weekly, appts, start, end), nil
}

// Schedule returns the parsed weekly template of userID.
func (s *Service) Schedule(ctx context.Context, userID string) (availability.Weekly, error) {
	sc, err := s.repo.ScheduleByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.ErrNoSchedule
	}
	if err != nil {
		return nil, err
	}
	weekly, err := availability.ParseWeekly(sc.Availability)
	if err != nil {
		s.log.Warn("stored availability does not parse", zap.String("user_id", userID), zap.Error(err))
		return nil, apperr.ErrInvalidAvailability
	}
	return weekly, nil
}

func (s *Service) SetSchedule(ctx context.Context, userID string, weekly availability.Weekly) error {
	if err := weekly.Validate(); err != nil {
		return apperr.Invalid("%v", err)
	}
	text, err := weekly.Encode()
	if err != nil {
		return err
	}
	return s.repo.UpsertSchedule(ctx, &model.Schedule{UserID: userID, Availability: text})
}
