package store

import (
	"context"

	"scheduling-api/internal/model"
)

const eventCols = `id, user_id, title, description, duration_minutes, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }, e *model.Event) error {
	return row.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.DurationMinutes, &e.CreatedAt, &e.UpdatedAt)
}

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	return translate(s.pool.QueryRow(ctx,
		`INSERT INTO events (id, user_id, title, description, duration_minutes)
		 VALUES ($1,$2,$3,$4,$5) RETURNING created_at, updated_at`,
		e.ID, e.UserID, e.Title, e.Description, e.DurationMinutes,
	).Scan(&e.CreatedAt, &e.UpdatedAt))
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e := &model.Event{}
	if err := scanEvent(s.pool.QueryRow(ctx, `SELECT `+eventCols+` FROM events WHERE id = $1`, id), e); err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *Store) ListEvents(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventCols+` FROM events WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, translate(rows.Err())
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	return translate(s.pool.QueryRow(ctx,
		`UPDATE events SET title=$1, description=$2, duration_minutes=$3, updated_at=NOW()
		 WHERE id=$4 AND user_id=$5 RETURNING created_at, updated_at`,
		e.Title, e.Description, e.DurationMinutes, e.ID, e.UserID,
	).Scan(&e.CreatedAt, &e.UpdatedAt))
}

func (s *Store) DeleteEvent(ctx context.Context, id, userID string) error {
	return mustAffect(s.pool.Exec(ctx, `DELETE FROM events WHERE id=$1 AND user_id=$2`, id, userID))
}
