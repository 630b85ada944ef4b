package rpc

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

func (m *RegisterRequest) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.Email)
	out = appendString(out, 2, m.Password)
	out = appendString(out, 3, m.Name)
	return out, nil
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = string(f.val)
		case 2:
			m.Password = string(f.val)
		case 3:
			m.Name = string(f.val)
		}
		return nil
	})
}

type RegisterResponse struct {
	UserId       string
	Token        string
	RefreshToken string
}

func (m *RegisterResponse) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.UserId)
	out = appendString(out, 2, m.Token)
	out = appendString(out, 3, m.RefreshToken)
	return out, nil
}

func (m *RegisterResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.UserId = string(f.val)
		case 2:
			m.Token = string(f.val)
		case 3:
			m.RefreshToken = string(f.val)
		}
		return nil
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.Email)
	out = appendString(out, 2, m.Password)
	return out, nil
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = string(f.val)
		case 2:
			m.Password = string(f.val)
		}
		return nil
	})
}

type LoginResponse struct {
	Token        string
	UserId       string
	Name         string
	RefreshToken string
}

func (m *LoginResponse) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.Token)
	out = appendString(out, 2, m.UserId)
	out = appendString(out, 3, m.Name)
	out = appendString(out, 4, m.RefreshToken)
	return out, nil
}

func (m *LoginResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Token = string(f.val)
		case 2:
			m.UserId = string(f.val)
		case 3:
			m.Name = string(f.val)
		case 4:
			m.RefreshToken = string(f.val)
		}
		return nil
	})
}

type TimeSlot struct {
	Start     *timestamppb.Timestamp
	End       *timestamppb.Timestamp
	Available bool
}

func (m *TimeSlot) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendTimestamp(out, 1, m.Start)
	out = appendTimestamp(out, 2, m.End)
	out = appendBool(out, 3, m.Available)
	return out, nil
}

func (m *TimeSlot) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Start, err = parseTimestamp(f.val)
		case 2:
			m.End, err = parseTimestamp(f.val)
		case 3:
			m.Available = f.u != 0
		}
		return err
	})
}

type GetAvailabilityRequest struct {
	UserId    string
	StartDate *timestamppb.Timestamp
	EndDate   *timestamppb.Timestamp
}

func (m *GetAvailabilityRequest) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.UserId)
	out = appendTimestamp(out, 2, m.StartDate)
	out = appendTimestamp(out, 3, m.EndDate)
	return out, nil
}

func (m *GetAvailabilityRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.UserId = string(f.val)
		case 2:
			m.StartDate, err = parseTimestamp(f.val)
		case 3:
			m.EndDate, err = parseTimestamp(f.val)
		}
		return err
	})
}

type GetAvailabilityResponse struct {
	Slots []*TimeSlot
}

func (m *GetAvailabilityResponse) MarshalWire() ([]byte, error) {
	var out []byte
	for _, s := range m.Slots {
		inner, _ := s.MarshalWire()
		out = appendMessage(out, 1, inner)
	}
	return out, nil
}

func (m *GetAvailabilityResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		s := &TimeSlot{}
		if err := s.UnmarshalWire(f.val); err != nil {
			return err
		}
		m.Slots = append(m.Slots, s)
		return nil
	})
}

type Interval struct {
	Start string // HH:MM
	End   string
}

type DayAvailability struct {
	Day       string
	Intervals []*Interval
}

func (m *DayAvailability) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.Day)
	for _, iv := range m.Intervals {
		var inner []byte
		inner = appendString(inner, 1, iv.Start)
		inner = appendString(inner, 2, iv.End)
		out = appendMessage(out, 2, inner)
	}
	return out, nil
}

func (m *DayAvailability) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Day = string(f.val)
		case 2:
			iv := &Interval{}
			err := walk(f.val, func(g field) error {
				switch g.num {
				case 1:
					iv.Start = string(g.val)
				case 2:
					iv.End = string(g.val)
				}
				return nil
			})
			if err != nil {
				return err
			}
			m.Intervals = append(m.Intervals, iv)
		}
		return nil
	})
}

func marshalDays(days []*DayAvailability) []byte {
	var out []byte
	for _, d := range days {
		inner, _ := d.MarshalWire()
		out = appendMessage(out, 1, inner)
	}
	return out
}

func unmarshalDays(f field, days *[]*DayAvailability) error {
	if f.num != 1 {
		return nil
	}
	d := &DayAvailability{}
	if err := d.UnmarshalWire(f.val); err != nil {
		return err
	}
	*days = append(*days, d)
	return nil
}

// GetScheduleRequest reads another user's schedule when UserId is set and
// the caller's own otherwise.
type GetScheduleRequest struct {
	UserId string
}

func (m *GetScheduleRequest) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.UserId), nil
}

func (m *GetScheduleRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.UserId = string(f.val)
		}
		return nil
	})
}

type GetScheduleResponse struct {
	Days []*DayAvailability
}

func (m *GetScheduleResponse) MarshalWire() ([]byte, error) { return marshalDays(m.Days), nil }

func (m *GetScheduleResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error { return unmarshalDays(f, &m.Days) })
}

type SetScheduleRequest struct {
	Days []*DayAvailability
}

func (m *SetScheduleRequest) MarshalWire() ([]byte, error) { return marshalDays(m.Days), nil }

func (m *SetScheduleRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error { return unmarshalDays(f, &m.Days) })
}

type SetScheduleResponse struct{}

func (*SetScheduleResponse) MarshalWire() ([]byte, error) { return nil, nil }
func (*SetScheduleResponse) UnmarshalWire([]byte) error   { return nil }

type Appointment struct {
	Id           string
	EventId      string
	UserId       string
	InviteeEmail string
	StartTime    *timestamppb.Timestamp
	EndTime      *timestamppb.Timestamp
	Status       string
	CreatedAt    *timestamppb.Timestamp
	UpdatedAt    *timestamppb.Timestamp
}

func (m *Appointment) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.Id)
	out = appendString(out, 2, m.EventId)
	out = appendString(out, 3, m.UserId)
	out = appendString(out, 4, m.InviteeEmail)
	out = appendTimestamp(out, 5, m.StartTime)
	out = appendTimestamp(out, 6, m.EndTime)
	out = appendString(out, 7, m.Status)
	out = appendTimestamp(out, 8, m.CreatedAt)
	out = appendTimestamp(out, 9, m.UpdatedAt)
	return out, nil
}

func (m *Appointment) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Id = string(f.val)
		case 2:
			m.EventId = string(f.val)
		case 3:
			m.UserId = string(f.val)
		case 4:
			m.InviteeEmail = string(f.val)
		case 5:
			m.StartTime, err = parseTimestamp(f.val)
		case 6:
			m.EndTime, err = parseTimestamp(f.val)
		case 7:
			m.Status = string(f.val)
		case 8:
			m.CreatedAt, err = parseTimestamp(f.val)
		case 9:
			m.UpdatedAt, err = parseTimestamp(f.val)
		}
		return err
	})
}

// marshalSingle encodes responses that carry one appointment in field 1.
func marshalSingle(a *Appointment) []byte {
	if a == nil {
		return nil
	}
	inner, _ := a.MarshalWire()
	return appendMessage(nil, 1, inner)
}

func unmarshalSingle(b []byte, dst **Appointment) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		a := &Appointment{}
		if err := a.UnmarshalWire(f.val); err != nil {
			return err
		}
		*dst = a
		return nil
	})
}

type CreateAppointmentRequest struct {
	EventId      string
	InviteeEmail string
	StartTime    *timestamppb.Timestamp
	EndTime      *timestamppb.Timestamp
}

func (m *CreateAppointmentRequest) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.EventId)
	out = appendString(out, 2, m.InviteeEmail)
	out = appendTimestamp(out, 3, m.StartTime)
	out = appendTimestamp(out, 4, m.EndTime)
	return out, nil
}

func (m *CreateAppointmentRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.EventId = string(f.val)
		case 2:
			m.InviteeEmail = string(f.val)
		case 3:
			m.StartTime, err = parseTimestamp(f.val)
		case 4:
			m.EndTime, err = parseTimestamp(f.val)
		}
		return err
	})
}

type CreateAppointmentResponse struct {
	Appointment *Appointment
}

func (m *CreateAppointmentResponse) MarshalWire() ([]byte, error) {
	return marshalSingle(m.Appointment), nil
}

func (m *CreateAppointmentResponse) UnmarshalWire(b []byte) error {
	return unmarshalSingle(b, &m.Appointment)
}

type ListAppointmentsRequest struct {
	RangeStart *timestamppb.Timestamp
	RangeEnd   *timestamppb.Timestamp
}

func (m *ListAppointmentsRequest) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendTimestamp(out, 1, m.RangeStart)
	out = appendTimestamp(out, 2, m.RangeEnd)
	return out, nil
}

func (m *ListAppointmentsRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.RangeStart, err = parseTimestamp(f.val)
		case 2:
			m.RangeEnd, err = parseTimestamp(f.val)
		}
		return err
	})
}

type ListAppointmentsResponse struct {
	Appointments []*Appointment
}

func (m *ListAppointmentsResponse) MarshalWire() ([]byte, error) {
	var out []byte
	for _, a := range m.Appointments {
		inner, _ := a.MarshalWire()
		out = appendMessage(out, 1, inner)
	}
	return out, nil
}

func (m *ListAppointmentsResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		a := &Appointment{}
		if err := a.UnmarshalWire(f.val); err != nil {
			return err
		}
		m.Appointments = append(m.Appointments, a)
		return nil
	})
}

type UpdateAppointmentStatusRequest struct {
	Id     string
	Status string
}

func (m *UpdateAppointmentStatusRequest) MarshalWire() ([]byte, error) {
	var out []byte
	out = appendString(out, 1, m.Id)
	out = appendString(out, 2, m.Status)
	return out, nil
}

func (m *UpdateAppointmentStatusRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Id = string(f.val)
		case 2:
			m.Status = string(f.val)
		}
		return nil
	})
}

type UpdateAppointmentStatusResponse struct {
	Appointment *Appointment
}

func (m *UpdateAppointmentStatusResponse) MarshalWire() ([]byte, error) {
	return marshalSingle(m.Appointment), nil
}

func (m *UpdateAppointmentStatusResponse) UnmarshalWire(b []byte) error {
	return unmarshalSingle(b, &m.Appointment)
}

type DeleteAppointmentRequest struct {
	Id string
}

func (m *DeleteAppointmentRequest) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.Id), nil
}

func (m *DeleteAppointmentRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.Id = string(f.val)
		}
		return nil
	})
}

type DeleteAppointmentResponse struct{}

func (*DeleteAppointmentResponse) MarshalWire() ([]byte, error) { return nil, nil }
func (*DeleteAppointmentResponse) UnmarshalWire([]byte) error   { return nil }
