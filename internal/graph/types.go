package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
)

type slotResolver struct{ s model.TimeSlot }

func (r *slotResolver) Start() graphql.Time { return graphql.Time{Time: r.s.Start} }
func (r *slotResolver) End() graphql.Time { return graphql.Time{Time: r.s.End} }
func (r *slotResolver) Available() bool { return r.s.Available }

type userResolver struct{ u *model.User }

func (r *userResolver) ID() graphql.ID { return graphql.ID(r.u.ID) }
func (r *userResolver) Email() string { return r.u.Email }
func (r *userResolver) Name() string { return r.u.Name }

type intervalResolver struct{ iv availability.Interval }

func (r *intervalResolver) Start() string { return r.iv.Start.String() }
func (r *intervalResolver) End() string { return r.iv.End.String() }

type dayResolver struct{ d availability.DayAvailability }

func (r *dayResolver) Day() string { return r.d.Day }

func (r *dayResolver) Intervals() []*intervalResolver {
	out := make([]*intervalResolver, len(r.d.Intervals))
	for i, iv := range r.d.Intervals {
		out[i] = &intervalResolver{iv}
	}
	return out
}

func days(w availability.Weekly) []*dayResolver {
	out := make([]*dayResolver, len(w))
	for i, d := range w {
		out[i] = &dayResolver{d}
	}
	return out
}

type eventResolver struct{ e *model.Event }

func (r *eventResolver) ID() graphql.ID { return graphql.ID(r.e.ID) }
func (r *eventResolver) Title() string { return r.e.Title }
func (r *eventResolver) Description() string { return r.e.Description }
func (r *eventResolver) DurationMinutes() int32 { return int32(r.e.DurationMinutes) }
func (r *eventResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.e.CreatedAt} }

type appointmentResolver struct{ a *model.Appointment }

func (r *appointmentResolver) ID() graphql.ID { return graphql.ID(r.a.ID) }
func (r *appointmentResolver) UserID() graphql.ID { return graphql.ID(r.a.UserID) }
func (r *appointmentResolver) Status() string { return string(r.a.Status) }

func (r *appointmentResolver) EventID() *graphql.ID {
	if r.a.EventID == "" {
		return nil
	}
	id := graphql.ID(r.a.EventID)
	return &id
}

func (r *appointmentResolver) InviteeEmail() *string {
	if r.a.InviteeEmail == "" {
		return nil
	}
	return &r.a.InviteeEmail
}

func (r *appointmentResolver) StartTime() graphql.Time { return graphql.Time{Time: r.a.StartTime} }
func (r *appointmentResolver) EndTime() graphql.Time { return graphql.Time{Time: r.a.EndTime} }
