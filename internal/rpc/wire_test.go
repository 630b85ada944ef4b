package rpc_test

import (
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"

	"scheduling-api/internal/rpc"
)

func TestCodecAppointment(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 500, time.UTC)
	in := &rpc.CreateAppointmentResponse{Appointment: &rpc.Appointment{
		Id:           "a1",
		UserId:       "u1",
		InviteeEmail: "guest@example.com",
		StartTime:    timestamppb.New(start),
		EndTime:      timestamppb.New(start.Add(30 * time.Minute)),
		Status:       "scheduled",
	}}

	var c rpc.Codec
	b, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := &rpc.CreateAppointmentResponse{}
	if err := c.Unmarshal(b, out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	a := out.Appointment
	if a == nil || a.Id != "a1" || a.UserId != "u1" || a.Status != "scheduled" || a.EventId != "" {
		t.Fatalf("decoded %+v", a)
	}
	if !a.StartTime.AsTime().Equal(start) || !a.EndTime.AsTime().Equal(start.Add(30*time.Minute)) {
		t.Errorf("times = %v..%v", a.StartTime.AsTime(), a.EndTime.AsTime())
	}
}

func TestCodecSlotsAndSchedule(t *testing.T) {
	var c rpc.Codec
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b, _ := c.Marshal(&rpc.GetAvailabilityResponse{Slots: []*rpc.TimeSlot{
		{Start: timestamppb.New(start), End: timestamppb.New(start.Add(30 * time.Minute)), Available: true},
		{Start: timestamppb.New(start.Add(30 * time.Minute)), End: timestamppb.New(start.Add(time.Hour))},
	}})
	slots := &rpc.GetAvailabilityResponse{}
	if err := c.Unmarshal(b, slots); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(slots.Slots) != 2 || !slots.Slots[0].Available || slots.Slots[1].Available {
		t.Fatalf("slots = %+v", slots.Slots)
	}

	b, _ = c.Marshal(&rpc.SetScheduleRequest{Days: []*rpc.DayAvailability{
		{Day: "Monday", Intervals: []*rpc.Interval{{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}},
	}})
	sched := &rpc.SetScheduleRequest{}
	if err := c.Unmarshal(b, sched); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(sched.Days) != 1 || len(sched.Days[0].Intervals) != 2 || sched.Days[0].Intervals[1].End != "17:00" {
		t.Fatalf("schedule = %+v", sched.Days)
	}
}

func TestCodecSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "a@example.com")
	b = protowire.AppendTag(b, 10, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 7)

	req := &rpc.LoginRequest{}
	if err := req.UnmarshalWire(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Email != "a@example.com" {
		t.Errorf("email = %q", req.Email)
	}
}

func TestCodecRejects(t *testing.T) {
	var c rpc.Codec
	if err := c.Unmarshal([]byte{0x0a, 0x05, 'a'}, &rpc.LoginRequest{}); err == nil {
		t.Error("expected error for truncated field")
	}
	if _, err := c.Marshal("not a message"); err == nil {
		t.Error("expected error for foreign type")
	}
}
