package store

import (
	"context"
	"time"

	"scheduling-api/internal/model"
)

const apptCols = `id, COALESCE(event_id::text, ''), user_id, invitee_email, start_time, end_time,
	status, created_at, updated_at`

func scanAppointment(row interface{ Scan(...any) error }, a *model.Appointment) error {
	return row.Scan(&a.ID, &a.EventID, &a.UserID, &a.InviteeEmail, &a.StartTime, &a.EndTime,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
}

// CreateAppointment inserts a; the exclusion constraint on the table turns a
// lost booking race into ErrConflict.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	return translate(s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, event_id, user_id, invitee_email, start_time, end_time, status)
		 VALUES ($1, NULLIF($2,'')::uuid, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		a.ID, a.EventID, a.UserID, a.InviteeEmail, a.StartTime, a.EndTime, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt))
}

func (s *Store) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE user_id = $1
		  AND status <> 'canceled'
		  AND start_time < $3
		  AND end_time > $2`

	args := []any{userID, start, end}

	if excludeID != "" {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.pool.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, translate(err)
}

// BlockingAppointments returns the host's non-canceled appointments whose
// interval intersects [from, to).
func (s *Store) BlockingAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error) {
	return s.queryAppointments(ctx,
		`SELECT `+apptCols+` FROM appointments
		 WHERE user_id = $1 AND start_time < $3 AND end_time > $2 AND status <> 'canceled'
		 ORDER BY start_time`, userID, from, to)
}

// ListAppointments returns every appointment of the host intersecting [from, to),
// canceled ones included.
func (s *Store) ListAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error) {
	return s.queryAppointments(ctx,
		`SELECT `+apptCols+` FROM appointments
		 WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		 ORDER BY start_time`, userID, from, to)
}

func (s *Store) queryAppointments(ctx context.Context, q string, args ...any) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, translate(rows.Err())
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	if err := scanAppointment(s.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id), a); err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, id, userID string, st model.Status) error {
	return mustAffect(s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW()
		 WHERE id=$2 AND user_id=$3`, st, id, userID,
	))
}

func (s *Store) DeleteAppointment(ctx context.Context, id, userID string) error {
	return mustAffect(s.pool.Exec(ctx, `DELETE FROM appointments WHERE id=$1 AND user_id=$2`, id, userID))
}
