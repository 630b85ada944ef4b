// Package schedulingtest provides an in-memory repository for tests of the
// scheduling and account services and the transports built on them.
package schedulingtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"scheduling-api/internal/model"
	"scheduling-api/internal/store"
)

type Memory struct {
	mu        sync.Mutex
	users     map[string]model.User
	schedules map[string]model.Schedule
	events    map[string]model.Event
	appts     map[string]model.Appointment
	tokens    map[string]store.RefreshToken
}

func NewMemory() *Memory {
	return &Memory{
		users:     map[string]model.User{},
		schedules: map[string]model.Schedule{},
		events:    map[string]model.Event{},
		appts:     map[string]model.Appointment{},
		tokens:    map[string]store.RefreshToken{},
	}
}

// PutSchedule stores raw availability text, bypassing validation.
func (m *Memory) PutSchedule(userID, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[userID] = model.Schedule{UserID: userID, Availability: text, UpdatedAt: time.Now()}
}

func (m *Memory) PutAppointment(a model.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appts[a.ID] = a
}

func (m *Memory) PutEvent(e model.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[e.ID] = e
}

// users

func (m *Memory) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

// schedules

func (m *Memory) ScheduleByUser(_ context.Context, userID string) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.schedules[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sc, nil
}

func (m *Memory) UpsertSchedule(_ context.Context, sc *model.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc.UpdatedAt = time.Now()
	m.schedules[sc.UserID] = *sc
	return nil
}

// events

func (m *Memory) CreateEvent(_ context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.CreatedAt, e.UpdatedAt = time.Now(), time.Now()
	m.events[e.ID] = *e
	return nil
}

func (m *Memory) GetEvent(_ context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (m *Memory) ListEvents(_ context.Context, userID string) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Event
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) UpdateEvent(_ context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.events[e.ID]
	if !ok || old.UserID != e.UserID {
		return store.ErrNotFound
	}
	e.CreatedAt, e.UpdatedAt = old.CreatedAt, time.Now()
	m.events[e.ID] = *e
	return nil
}

func (m *Memory) DeleteEvent(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok || e.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// appointments

func (m *Memory) overlaps(userID string, start, end time.Time, excludeID string) bool {
	for _, a := range m.appts {
		if a.UserID == userID && a.ID != excludeID && !a.Status.Canceled() &&
			a.StartTime.Before(end) && a.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (m *Memory) CreateAppointment(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !a.Status.Canceled() && m.overlaps(a.UserID, a.StartTime, a.EndTime, "") {
		return store.ErrConflict
	}
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	m.appts[a.ID] = *a
	return nil
}

func (m *Memory) HasOverlap(_ context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlaps(userID, start, end, excludeID), nil
}

func (m *Memory) list(userID string, from, to time.Time, live bool) []model.Appointment {
	var out []model.Appointment
	for _, a := range m.appts {
		if a.UserID != userID || !a.StartTime.Before(to) || !a.EndTime.After(from) {
			continue
		}
		if live && a.Status.Canceled() {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (m *Memory) BlockingAppointments(_ context.Context, userID string, from, to time.Time) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(userID, from, to, true), nil
}

func (m *Memory) ListAppointments(_ context.Context, userID string, from, to time.Time) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(userID, from, to, false), nil
}

func (m *Memory) GetAppointment(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (m *Memory) UpdateAppointmentStatus(_ context.Context, id, userID string, st model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok || a.UserID != userID {
		return store.ErrNotFound
	}
	if !st.Canceled() && m.overlaps(userID, a.StartTime, a.EndTime, id) {
		return store.ErrConflict
	}
	a.Status, a.UpdatedAt = st, time.Now()
	m.appts[id] = a
	return nil
}

func (m *Memory) DeleteAppointment(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok || a.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.appts, id)
	return nil
}

// refresh tokens

func (m *Memory) CreateRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.tokens[id] = store.RefreshToken{ID: id, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	return id, nil
}

func (m *Memory) GetRefreshTokenByHash(_ context.Context, tokenHash string) (*store.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.tokens {
		if rt.TokenHash == tokenHash {
			return &rt, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) RotateRefreshToken(_ context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.tokens[oldID]
	if !ok || old.Revoked {
		return store.ErrNotFound
	}
	old.Revoked, old.ReplacedBy = true, &newID
	m.tokens[oldID] = old
	m.tokens[newID] = store.RefreshToken{ID: newID, UserID: userID, TokenHash: newHash, ExpiresAt: newExpiry, CreatedAt: time.Now()}
	return nil
}

func (m *Memory) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rt := range m.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
			m.tokens[id] = rt
		}
	}
	return nil
}

func (m *Memory) PurgeRefreshTokens(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, rt := range m.tokens {
		if rt.ExpiresAt.Before(cutoff) || (rt.Revoked && rt.CreatedAt.Before(cutoff)) {
			delete(m.tokens, id)
			n++
		}
	}
	return n, nil
}
