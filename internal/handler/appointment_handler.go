package handler

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"scheduling-api/internal/model"
	"scheduling-api/internal/rpc"
)

func (h *Handler) CreateAppointment(ctx context.Context, req *rpc.CreateAppointmentRequest) (*rpc.CreateAppointmentResponse, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	a := &model.Appointment{
		EventID:      req.EventId,
		UserID:       uid,
		InviteeEmail: req.InviteeEmail,
		StartTime:    asTime(req.StartTime),
		EndTime:      asTime(req.EndTime),
	}
	if err := h.sched.CreateAppointment(ctx, a); err != nil {
		return nil, h.toStatus("CreateAppointment", err)
	}
	return &rpc.CreateAppointmentResponse{Appointment: toProto(a)}, nil
}

func (h *Handler) ListAppointments(ctx context.Context, req *rpc.ListAppointmentsRequest) (*rpc.ListAppointmentsResponse, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	apts, err := h.sched.Appointments(ctx, uid, asTime(req.RangeStart), asTime(req.RangeEnd))
	if err != nil {
		return nil, h.toStatus("ListAppointments", err)
	}
	out := make([]*rpc.Appointment, len(apts))
	for i := range apts {
		out[i] = toProto(&apts[i])
	}
	return &rpc.ListAppointmentsResponse{Appointments: out}, nil
}

func (h *Handler) UpdateAppointmentStatus(ctx context.Context, req *rpc.UpdateAppointmentStatusRequest) (*rpc.UpdateAppointmentStatusResponse, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	a, err := h.sched.SetAppointmentStatus(ctx, uid, req.Id, req.Status)
	if err != nil {
		return nil, h.toStatus("UpdateAppointmentStatus", err)
	}
	return &rpc.UpdateAppointmentStatusResponse{Appointment: toProto(a)}, nil
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *rpc.DeleteAppointmentRequest) (*rpc.DeleteAppointmentResponse, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.sched.DeleteAppointment(ctx, uid, req.Id); err != nil {
		return nil, h.toStatus("DeleteAppointment", err)
	}
	return &rpc.DeleteAppointmentResponse{}, nil
}

func asTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}

func toProto(a *model.Appointment) *rpc.Appointment {
	p := &rpc.Appointment{
		Id:           a.ID,
		EventId:      a.EventID,
		UserId:       a.UserID,
		InviteeEmail: a.InviteeEmail,
		Status:       string(a.Status),
	}
	if !a.StartTime.IsZero() {
		p.StartTime = timestamppb.New(a.StartTime)
	}
	if !a.EndTime.IsZero() {
		p.EndTime = timestamppb.New(a.EndTime)
	}
	if !a.CreatedAt.IsZero() {
		p.CreatedAt = timestamppb.New(a.CreatedAt)
	}
	if !a.UpdatedAt.IsZero() {
		p.UpdatedAt = timestamppb.New(a.UpdatedAt)
	}
	return p
}
