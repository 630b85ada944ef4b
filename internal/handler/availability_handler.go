package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/timestamppb"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/availability"
	"scheduling-api/internal/model"
	"scheduling-api/internal/rpc"
)

func (h *Handler) GetAvailability(ctx context.Context, req *rpc.GetAvailabilityRequest) (*rpc.GetAvailabilityResponse, error) {
	uid := req.UserId
	if uid == "" {
		var err error
		if uid, err = caller(ctx); err != nil {
			return nil, err
		}
	}
	if req.StartDate == nil || req.EndDate == nil {
		return nil, h.toStatus("GetAvailability", apperr.Invalid("start and end dates required"))
	}

	slots, err := h.sched.Availability(ctx, uid, model.DateRange{
		StartDate: req.StartDate.AsTime(),
		EndDate:   req.EndDate.AsTime(),
	})
	if err != nil {
		return nil, h.toStatus("GetAvailability", err)
	}
	out := make([]*rpc.TimeSlot, len(slots))
	for i, s := range slots {
		out[i] = &rpc.TimeSlot{
			Start:     timestamppb.New(s.Start),
			End:       timestamppb.New(s.End),
			Available: s.Available,
		}
	}
	return &rpc.GetAvailabilityResponse{Slots: out}, nil
}

func (h *Handler) GetSchedule(ctx context.Context, req *rpc.GetScheduleRequest) (*rpc.GetScheduleResponse, error) {
	uid := req.UserId
	if uid == "" {
		var err error
		if uid, err = caller(ctx); err != nil {
			return nil, err
		}
	}
	weekly, err := h.sched.Schedule(ctx, uid)
	if err != nil {
		return nil, h.toStatus("GetSchedule", err)
	}
	return &rpc.GetScheduleResponse{Days: toDays(weekly)}, nil
}

func (h *Handler) SetSchedule(ctx context.Context, req *rpc.SetScheduleRequest) (*rpc.SetScheduleResponse, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	weekly, err := fromDays(req.Days)
	if err != nil {
		return nil, h.toStatus("SetSchedule", err)
	}
	if err := h.sched.SetSchedule(ctx, uid, weekly); err != nil {
		return nil, h.toStatus("SetSchedule", err)
	}
	return &rpc.SetScheduleResponse{}, nil
}

func toDays(w availability.Weekly) []*rpc.DayAvailability {
	out := make([]*rpc.DayAvailability, len(w))
	for i, d := range w {
		day := &rpc.DayAvailability{Day: d.Day}
		for _, iv := range d.Intervals {
			day.Intervals = append(day.Intervals, &rpc.Interval{Start: iv.Start.String(), End: iv.End.String()})
		}
		out[i] = day
	}
	return out
}

func fromDays(days []*rpc.DayAvailability) (availability.Weekly, error) {
	w := make(availability.Weekly, 0, len(days))
	for _, d := range days {
		day := availability.DayAvailability{Day: d.Day}
		for _, iv := range d.Intervals {
			start, err := availability.ParseClock(iv.Start)
			if err != nil {
				return nil, apperr.Invalid("%s: bad start %q", d.Day, iv.Start)
			}
			end, err := availability.ParseClock(iv.End)
			if err != nil {
				return nil, apperr.Invalid("%s: bad end %q", d.Day, iv.End)
			}
			day.Intervals = append(day.Intervals, availability.Interval{Start: start, End: end})
		}
		w = append(w, day)
	}
	return w, nil
}
