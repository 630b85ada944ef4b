package rpc_test

import (
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"

	"scheduling-api/internal/rpc"
)

var (
	protoPackage = regexp.MustCompile(`(?m)^package\s+([\w.]+);`)
	protoService = regexp.MustCompile(`(?m)^service\s+(\w+)\s*\{`)
	protoRPC     = regexp.MustCompile(`(?m)^\s*rpc\s+(\w+)\(`)
	protoMessage = regexp.MustCompile(`(?s)message\s+(\w+)\s*\{(.*?)\}`)
	protoField   = regexp.MustCompile(`(?m)^\s*(repeated\s+)?([\w.]+)\s+\w+\s*=\s*(\d+);`)
)

type declared struct {
	num  protowire.Number
	wire protowire.Type
}

func readContract(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("scheduling.proto")
	if err != nil {
		t.Fatalf("read contract: %v", err)
	}
	return string(b)
}

func contractMessages(t *testing.T, src string) map[string][]declared {
	t.Helper()
	out := map[string][]declared{}
	for _, m := range protoMessage.FindAllStringSubmatch(src, -1) {
		fields := []declared{}
		for _, f := range protoField.FindAllStringSubmatch(m[2], -1) {
			n, err := strconv.Atoi(f[3])
			if err != nil {
				t.Fatalf("%s: field number %q", m[1], f[3])
			}
			wt := protowire.BytesType
			if f[2] == "bool" {
				wt = protowire.VarintType
			}
			fields = append(fields, declared{protowire.Number(n), wt})
		}
		out[m[1]] = fields
	}
	return out
}

// emitted lists the top-level fields present in b, sorted by number.
func emitted(t *testing.T, b []byte) []declared {
	t.Helper()
	var out []declared
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			t.Fatalf("bad tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			t.Fatalf("bad value for field %d: %v", num, protowire.ParseError(m))
		}
		b = b[m:]
		out = append(out, declared{num, typ})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].num < out[j].num })
	return out
}

func TestContractService(t *testing.T) {
	src := readContract(t)

	pkg := protoPackage.FindStringSubmatch(src)
	svc := protoService.FindStringSubmatch(src)
	if pkg == nil || svc == nil {
		t.Fatal("contract has no package or service")
	}
	if got := pkg[1] + "." + svc[1]; got != rpc.ServiceName {
		t.Errorf("service = %q, want %q", got, rpc.ServiceName)
	}

	var want []string
	for _, m := range protoRPC.FindAllStringSubmatch(src, -1) {
		want = append(want, m[1])
	}
	var got []string
	for _, m := range rpc.ServiceDesc.Methods {
		got = append(got, m.MethodName)
	}
	sort.Strings(want)
	sort.Strings(got)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("methods = %v, want %v", got, want)
	}
}

func TestContractFieldNumbers(t *testing.T) {
	msgs := contractMessages(t, readContract(t))

	ts := timestamppb.New(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	appt := &rpc.Appointment{
		Id: "a1", EventId: "e1", UserId: "u1", InviteeEmail: "guest@example.com",
		StartTime: ts, EndTime: ts, Status: "scheduled", CreatedAt: ts, UpdatedAt: ts,
	}
	day := &rpc.DayAvailability{Day: "monday", Intervals: []*rpc.Interval{{Start: "09:00", End: "17:00"}}}

	// every field set, so proto3 encoding emits each one
	full := map[string]rpc.Message{
		"RegisterRequest":                 &rpc.RegisterRequest{Email: "a@b.c", Password: "pw", Name: "A"},
		"RegisterResponse":                &rpc.RegisterResponse{UserId: "u1", Token: "t", RefreshToken: "r"},
		"LoginRequest":                    &rpc.LoginRequest{Email: "a@b.c", Password: "pw"},
		"LoginResponse":                   &rpc.LoginResponse{Token: "t", UserId: "u1", Name: "A", RefreshToken: "r"},
		"TimeSlot":                        &rpc.TimeSlot{Start: ts, End: ts, Available: true},
		"GetAvailabilityRequest":          &rpc.GetAvailabilityRequest{UserId: "u1", StartDate: ts, EndDate: ts},
		"GetAvailabilityResponse":         &rpc.GetAvailabilityResponse{Slots: []*rpc.TimeSlot{{Start: ts}}},
		"DayAvailability":                 day,
		"GetScheduleRequest":              &rpc.GetScheduleRequest{UserId: "u1"},
		"GetScheduleResponse":             &rpc.GetScheduleResponse{Days: []*rpc.DayAvailability{day}},
		"SetScheduleRequest":              &rpc.SetScheduleRequest{Days: []*rpc.DayAvailability{day}},
		"SetScheduleResponse":             &rpc.SetScheduleResponse{},
		"Appointment":                     appt,
		"CreateAppointmentRequest":        &rpc.CreateAppointmentRequest{EventId: "e1", InviteeEmail: "g@x.y", StartTime: ts, EndTime: ts},
		"CreateAppointmentResponse":       &rpc.CreateAppointmentResponse{Appointment: appt},
		"ListAppointmentsRequest":         &rpc.ListAppointmentsRequest{RangeStart: ts, RangeEnd: ts},
		"ListAppointmentsResponse":        &rpc.ListAppointmentsResponse{Appointments: []*rpc.Appointment{appt}},
		"UpdateAppointmentStatusRequest":  &rpc.UpdateAppointmentStatusRequest{Id: "a1", Status: "cancelled"},
		"UpdateAppointmentStatusResponse": &rpc.UpdateAppointmentStatusResponse{Appointment: appt},
		"DeleteAppointmentRequest":        &rpc.DeleteAppointmentRequest{Id: "a1"},
		"DeleteAppointmentResponse":       &rpc.DeleteAppointmentResponse{},
	}

	for name, want := range msgs {
		if name == "Interval" {
			continue // encoded inline by DayAvailability, checked below
		}
		m, ok := full[name]
		if !ok {
			t.Errorf("%s: declared in contract but has no Go message", name)
			continue
		}
		b, err := m.MarshalWire()
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		if got := emitted(t, b); !sameFields(got, want) {
			t.Errorf("%s: emitted %v, contract declares %v", name, got, want)
		}
	}
	for name := range full {
		if _, ok := msgs[name]; !ok {
			t.Errorf("%s: Go message missing from contract", name)
		}
	}

	b, _ := day.MarshalWire()
	var inner []byte
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if num == 2 {
			inner, _ = protowire.ConsumeBytes(b)
		}
		b = b[m:]
	}
	if got := emitted(t, inner); !sameFields(got, msgs["Interval"]) {
		t.Errorf("Interval: emitted %v, contract declares %v", got, msgs["Interval"])
	}
}

func sameFields(got, want []declared) bool {
	if len(got) != len(want) {
		return false
	}
	w := append([]declared(nil), want...)
	sort.Slice(w, func(i, j int) bool { return w[i].num < w[j].num })
	for i := range got {
		if got[i] != w[i] {
			return false
		}
	}
	return true
}
