package graph

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
)

func (r *Resolver) AvailableSlots(ctx context.Context, args struct {
	UserID    graphql.ID
	DateRange struct {
		StartDate graphql.Time
		EndDate   graphql.Time
	}
}) ([]*slotResolver, error) {
	slots, err := r.sched.Availability(ctx, string(args.UserID), model.DateRange{
		StartDate: args.DateRange.StartDate.Time,
		EndDate:   args.DateRange.EndDate.Time,
	})
	if err != nil {
		return nil, r.fail("availableSlots", err)
	}
	out := make([]*slotResolver, len(slots))
	for i := range slots {
		out[i] = &slotResolver{slots[i]}
	}
	return out, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	u, err := r.accounts.Me(ctx, uid)
	if err != nil {
		return nil, r.fail("me", err)
	}
	return &userResolver{u}, nil
}

func (r *Resolver) Schedule(ctx context.Context, args struct{ UserID *graphql.ID }) ([]*dayResolver, error) {
	var uid string
	if args.UserID != nil {
		uid = string(*args.UserID)
	} else {
		var err error
		if uid, err = r.caller(ctx); err != nil {
			return nil, err
		}
	}
	weekly, err := r.sched.Schedule(ctx, uid)
	if err != nil {
		return nil, r.fail("schedule", err)
	}
	return days(weekly), nil
}

func (r *Resolver) Events(ctx context.Context) ([]*eventResolver, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	evs, err := r.sched.Events(ctx, uid)
	if err != nil {
		return nil, r.fail("events", err)
	}
	out := make([]*eventResolver, len(evs))
	for i := range evs {
		out[i] = &eventResolver{&evs[i]}
	}
	return out, nil
}

func (r *Resolver) Appointments(ctx context.Context, args struct{ From, To *graphql.Time }) ([]*appointmentResolver, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	var from, to time.Time
	if args.From != nil {
		from = args.From.Time
	}
	if args.To != nil {
		to = args.To.Time
	}
	apts, err := r.sched.Appointments(ctx, uid, from, to)
	if err != nil {
		return nil, r.fail("appointments", err)
	}
	out := make([]*appointmentResolver, len(apts))
	for i := range apts {
		out[i] = &appointmentResolver{&apts[i]}
	}
	return out, nil
}

type intervalInput struct {
	Start string
	End   string
}

type dayInput struct {
	Day       string
	Intervals []intervalInput
}

func (r *Resolver) SetSchedule(ctx context.Context, args struct{ Days []dayInput }) ([]*dayResolver, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	weekly := make(availability.Weekly, 0, len(args.Days))
	for _, d := range args.Days {
		day := availability.DayAvailability{Day: d.Day}
		for _, iv := range d.Intervals {
			start, err := availability.ParseClock(iv.Start)
			if err != nil {
				return nil, r.fail("setSchedule", apperr.Invalid("invalid start time %q", iv.Start))
			}
			end, err := availability.ParseClock(iv.End)
			if err != nil {
				return nil, r.fail("setSchedule", apperr.Invalid("invalid end time %q", iv.End))
			}
			day.Intervals = append(day.Intervals, availability.Interval{Start: start, End: end})
		}
		weekly = append(weekly, day)
	}
	if err := r.sched.SetSchedule(ctx, uid, weekly); err != nil {
		return nil, r.fail("setSchedule", err)
	}
	return days(weekly), nil
}

func (r *Resolver) CreateEvent(ctx context.Context, args struct {
	Input struct {
		Title           string
		Description     *string
		DurationMinutes int32
	}
}) (*eventResolver, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	e := &model.Event{UserID: uid, Title: args.Input.Title, DurationMinutes: int(args.Input.DurationMinutes)}
	if args.Input.Description != nil {
		e.Description = *args.Input.Description
	}
	if err := r.sched.CreateEvent(ctx, e); err != nil {
		return nil, r.fail("createEvent", err)
	}
	return &eventResolver{e}, nil
}

func (r *Resolver) DeleteEvent(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return false, err
	}
	if err := r.sched.DeleteEvent(ctx, uid, string(args.ID)); err != nil {
		return false, r.fail("deleteEvent", err)
	}
	return true, nil
}

func (r *Resolver) CreateAppointment(ctx context.Context, args struct {
	Input struct {
		EventID      *graphql.ID
		InviteeEmail *string
		StartTime    graphql.Time
		EndTime      graphql.Time
		Status       *string
	}
}) (*appointmentResolver, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	in := args.Input
	a := &model.Appointment{UserID: uid, StartTime: in.StartTime.Time, EndTime: in.EndTime.Time}
	if in.EventID != nil {
		a.EventID = string(*in.EventID)
	}
	if in.InviteeEmail != nil {
		a.InviteeEmail = *in.InviteeEmail
	}
	if in.Status != nil {
		a.Status = model.Status(*in.Status)
	}
	if err := r.sched.CreateAppointment(ctx, a); err != nil {
		return nil, r.fail("createAppointment", err)
	}
	return &appointmentResolver{a}, nil
}

func (r *Resolver) UpdateAppointmentStatus(ctx context.Context, args struct {
	ID     graphql.ID
	Status string
}) (*appointmentResolver, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	a, err := r.sched.SetAppointmentStatus(ctx, uid, string(args.ID), args.Status)
	if err != nil {
		return nil, r.fail("updateAppointmentStatus", err)
	}
	return &appointmentResolver{a}, nil
}

func (r *Resolver) DeleteAppointment(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	uid, err := r.caller(ctx)
	if err != nil {
		return false, err
	}
	if err := r.sched.DeleteAppointment(ctx, uid, string(args.ID)); err != nil {
		return false, r.fail("deleteAppointment", err)
	}
	return true, nil
}
