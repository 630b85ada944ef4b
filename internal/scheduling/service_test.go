package scheduling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
	"scheduling-api/internal/scheduling"
	"scheduling-api/internal/scheduling/schedulingtest"
)

const host = "host-1"

// now is Sunday 2023-12-31 12:00 UTC, the day before the Monday used below.
var now = time.Date(2023, time.December, 31, 12, 0, 0, 0, time.UTC)

func monday(hour, min int) time.Time {
	return time.Date(2024, time.January, 1, hour, min, 0, 0, time.UTC)
}

func setup(t *testing.T) (*scheduling.Service, *schedulingtest.Memory) {
	t.Helper()
	mem := schedulingtest.NewMemory()
	mem.PutSchedule(host, `[{"day":"monday","intervals":[{"start":"09:00","end":"12:00"}]}]`)
	svc := scheduling.New(mem, zap.NewNop()).WithClock(func() time.Time { return now })
	return svc, mem
}

func TestAvailability(t *testing.T) {
	svc, mem := setup(t)
	mem.PutAppointment(model.Appointment{ID: "a1", UserID: host, StartTime: monday(10, 0), EndTime: monday(10, 30), Status: model.StatusScheduled})
	mem.PutAppointment(model.Appointment{ID: "a2", UserID: host, StartTime: monday(11, 0), EndTime: monday(11, 30), Status: model.StatusCanceled})
	mem.PutAppointment(model.Appointment{ID: "a3", UserID: "someone-else", StartTime: monday(9, 0), EndTime: monday(9, 30), Status: model.StatusConfirmed})

	slots, err := svc.Availability(context.Background(), host, model.DateRange{StartDate: monday(0, 0), EndDate: monday(0, 0)})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if want := !s.Start.Equal(monday(10, 0)); s.Available != want {
			t.Errorf("slot %s available=%v want %v", s.Start.Format("15:04"), s.Available, want)
		}
	}
}

func TestAvailabilityErrors(t *testing.T) {
	svc, mem := setup(t)
	mem.PutSchedule("broken", `{not json`)

	r := model.DateRange{StartDate: monday(0, 0), EndDate: monday(0, 0)}
	tests := []struct {
		name string
		user string
		r    model.DateRange
		want error
	}{
		{"no schedule", "nobody", r, apperr.ErrNoSchedule},
		{"unparseable schedule", "broken", r, apperr.ErrInvalidAvailability},
		{"missing user", "", r, apperr.ErrInvalidArgument},
		{"missing dates", host, model.DateRange{}, apperr.ErrInvalidArgument},
		{"range too long", host, model.DateRange{StartDate: monday(0, 0), EndDate: monday(0, 0).AddDate(2, 0, 0)}, apperr.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Availability(context.Background(), tt.user, tt.r)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAvailabilityReversedRangeIsEmpty(t *testing.T) {
	svc, _ := setup(t)
	slots, err := svc.Availability(context.Background(), host, model.DateRange{StartDate: monday(0, 0).AddDate(0, 0, 1), EndDate: monday(0, 0)})
	if err != nil {
		t.Fatalf("reversed range should not fail: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %d", len(slots))
	}
}

func TestSetSchedule(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	bad := availability.Weekly{{Day: "monday", Intervals: []availability.Interval{
		{Start: availability.NewClock(10, 0), End: availability.NewClock(9, 0)},
	}}}
	if err := svc.SetSchedule(ctx, "u2", bad); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	good := availability.Weekly{{Day: "Tuesday", Intervals: []availability.Interval{
		{Start: availability.NewClock(13, 0), End: availability.NewClock(14, 0)},
	}}}
	if err := svc.SetSchedule(ctx, "u2", good); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := svc.Schedule(ctx, "u2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].Intervals[0].Start != availability.NewClock(13, 0) {
		t.Errorf("unexpected schedule %+v", got)
	}
}

func TestEvents(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	for _, d := range []int{0, -30, 45, 24*60 + 30} {
		if err := svc.CreateEvent(ctx, &model.Event{UserID: host, Title: "x", DurationMinutes: d}); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("duration %d: expected invalid argument, got %v", d, err)
		}
	}
	if err := svc.CreateEvent(ctx, &model.Event{UserID: host, Title: "  ", DurationMinutes: 30}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("blank title: expected invalid argument, got %v", err)
	}

	ev := &model.Event{UserID: host, Title: "Intro call", DurationMinutes: 60}
	if err := svc.CreateEvent(ctx, ev); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Event(ctx, "intruder", ev.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign owner should see not found, got %v", err)
	}
	if err := svc.DeleteEvent(ctx, "intruder", ev.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign delete should be not found, got %v", err)
	}
	list, _ := svc.Events(ctx, host)
	if len(list) != 1 {
		t.Errorf("expected 1 event, got %d", len(list))
	}
	if err := svc.DeleteEvent(ctx, host, ev.ID); err != nil {
		t.Errorf("delete: %v", err)
	}
}

func TestBook(t *testing.T) {
	svc, mem := setup(t)
	ctx := context.Background()
	mem.PutEvent(model.Event{ID: "ev", UserID: host, Title: "Call", DurationMinutes: 60})

	a, err := svc.Book(ctx, "ev", "guest@example.com", monday(9, 0))
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if !a.EndTime.Equal(monday(10, 0)) || a.Status != model.StatusScheduled || a.UserID != host {
		t.Errorf("unexpected appointment %+v", a)
	}

	tests := []struct {
		name  string
		event string
		email string
		start time.Time
		want  error
	}{
		{"overlaps booking", "ev", "b@example.com", monday(9, 30), apperr.ErrConflict},
		{"outside availability", "ev", "b@example.com", monday(11, 30), apperr.ErrConflict},
		{"misaligned", "ev", "b@example.com", monday(10, 15), apperr.ErrConflict},
		{"unknown event", "nope", "b@example.com", monday(10, 0), apperr.ErrNotFound},
		{"bad email", "ev", "not-an-email", monday(10, 0), apperr.ErrInvalidArgument},
		{"past", "ev", "b@example.com", now.Add(-time.Hour), apperr.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(ctx, tt.event, tt.email, tt.start)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := svc.Book(ctx, "ev", "c@example.com", monday(10, 0)); err != nil {
		t.Errorf("adjacent booking should succeed: %v", err)
	}
}

func TestCreateAppointmentConflicts(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	first := &model.Appointment{UserID: host, StartTime: monday(14, 0), EndTime: monday(15, 0)}
	if err := svc.CreateAppointment(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Status != model.StatusScheduled {
		t.Errorf("default status should be scheduled, got %s", first.Status)
	}

	dup := &model.Appointment{UserID: host, StartTime: monday(14, 30), EndTime: monday(15, 30)}
	if err := svc.CreateAppointment(ctx, dup); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
	adjacent := &model.Appointment{UserID: host, StartTime: monday(15, 0), EndTime: monday(16, 0)}
	if err := svc.CreateAppointment(ctx, adjacent); err != nil {
		t.Errorf("adjacent should not conflict: %v", err)
	}
	other := &model.Appointment{UserID: "other-host", StartTime: monday(14, 0), EndTime: monday(15, 0)}
	if err := svc.CreateAppointment(ctx, other); err != nil {
		t.Errorf("different host should not conflict: %v", err)
	}

	invalid := []*model.Appointment{
		{UserID: host},
		{UserID: host, StartTime: monday(15, 0), EndTime: monday(14, 0)},
		{UserID: host, StartTime: now.Add(-time.Hour), EndTime: now},
		{UserID: host, StartTime: monday(18, 0), EndTime: monday(19, 0), Status: "pending"},
		{UserID: host, StartTime: monday(18, 0), EndTime: monday(19, 0), InviteeEmail: "nope"},
	}
	for i, a := range invalid {
		if err := svc.CreateAppointment(ctx, a); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("case %d: expected invalid argument, got %v", i, err)
		}
	}
}

func TestSetAppointmentStatus(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	a := &model.Appointment{UserID: host, StartTime: monday(9, 0), EndTime: monday(10, 0)}
	if err := svc.CreateAppointment(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.SetAppointmentStatus(ctx, host, a.ID, "Cancelled")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != model.StatusCanceled {
		t.Errorf("status should normalize to canceled, got %s", got.Status)
	}

	// the freed range can be taken by someone else, which blocks revival
	b := &model.Appointment{UserID: host, StartTime: monday(9, 30), EndTime: monday(10, 30)}
	if err := svc.CreateAppointment(ctx, b); err != nil {
		t.Fatalf("rebook: %v", err)
	}
	if _, err := svc.SetAppointmentStatus(ctx, host, a.ID, "confirmed"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict on revive, got %v", err)
	}

	if _, err := svc.SetAppointmentStatus(ctx, host, a.ID, "done"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
	if _, err := svc.SetAppointmentStatus(ctx, "intruder", b.ID, "canceled"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for foreign host, got %v", err)
	}

	slots, err := svc.Availability(ctx, host, model.DateRange{StartDate: monday(0, 0), EndDate: monday(0, 0)})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	busy := 0
	for _, s := range slots {
		if !s.Available {
			busy++
		}
	}
	if busy != 2 {
		t.Errorf("expected 2 busy slots from the live appointment, got %d", busy)
	}
}

func TestDeleteAppointment(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	a := &model.Appointment{UserID: host, StartTime: monday(9, 0), EndTime: monday(9, 30)}
	if err := svc.CreateAppointment(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteAppointment(ctx, "intruder", a.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := svc.DeleteAppointment(ctx, host, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Appointment(ctx, host, a.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
