package store

import (
	"context"

	"scheduling-api/internal/model"
)

func (s *Store) ScheduleByUser(ctx context.Context, userID string) (*model.Schedule, error) {
	sc := &model.Schedule{}
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, availability, updated_at FROM schedules WHERE user_id = $1`, userID,
	).Scan(&sc.UserID, &sc.Availability, &sc.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return sc, nil
}

// UpsertSchedule replaces the user's single schedule row.
func (s *Store) UpsertSchedule(ctx context.Context, sc *model.Schedule) error {
	return translate(s.pool.QueryRow(ctx,
		`INSERT INTO schedules (user_id, availability) VALUES ($1,$2)
		 ON CONFLICT (user_id) DO UPDATE SET availability = EXCLUDED.availability, updated_at = NOW()
		 RETURNING updated_at`,
		sc.UserID, sc.Availability,
	).Scan(&sc.UpdatedAt))
}
