package scheduling

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
	"scheduling-api/internal/store"
)

const maxEventMinutes = 24 * 60

func validateEvent(e *model.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return apperr.Invalid("title required")
	}
	slot := int(availability.SlotDuration.Minutes())
	if e.DurationMinutes <= 0 || e.DurationMinutes > maxEventMinutes || e.DurationMinutes%slot != 0 {
		return apperr.Invalid("duration must be a positive multiple of %d minutes up to 24h", slot)
	}
	return nil
}

func (s *Service) CreateEvent(ctx context.Context, e *model.Event) error {
	if err := validateEvent(e); err != nil {
		return err
	}
	e.ID = uuid.New().String()
	return s.repo.CreateEvent(ctx, e)
}

// Event returns the event only if userID owns it.
func (s *Service) Event(ctx context.Context, userID, id string) (*model.Event, error) {
	e, err := s.repo.GetEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && e.UserID != userID) {
		// 404 rather than 403 so foreign ids stay opaque
		return nil, apperr.ErrNotFound
	}
	return e, err
}

func (s *Service) Events(ctx context.Context, userID string) ([]model.Event, error) {
	return s.repo.ListEvents(ctx, userID)
}

func (s *Service) UpdateEvent(ctx context.Context, e *model.Event) error {
	if e.ID == "" {
		return apperr.Invalid("id required")
	}
	if err := validateEvent(e); err != nil {
		return err
	}
	err := s.repo.UpdateEvent(ctx, e)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *Service) DeleteEvent(ctx context.Context, userID, id string) error {
	if id == "" {
		return apperr.Invalid("id required")
	}
	err := s.repo.DeleteEvent(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
