package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scheduling-api/internal/model"
)

type eventJSON struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toEventJSON(e *model.Event) eventJSON {
	return eventJSON{ID: e.ID, Title: e.Title, Description: e.Description,
		DurationMinutes: e.DurationMinutes, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

type appointmentJSON struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId,omitempty"`
	UserID       string    `json:"userId"`
	InviteeEmail string    `json:"inviteeEmail,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
}

func toAppointmentJSON(a *model.Appointment) appointmentJSON {
	return appointmentJSON{ID: a.ID, EventID: a.EventID, UserID: a.UserID, InviteeEmail: a.InviteeEmail,
		StartTime: a.StartTime, EndTime: a.EndTime, Status: string(a.Status)}
}

type eventBody struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (s *server) listEvents(c *gin.Context) {
	evs, err := s.sched.Events(c.Request.Context(), uid(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]eventJSON, len(evs))
	for i := range evs {
		out[i] = toEventJSON(&evs[i])
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createEvent(c *gin.Context) {
	var b eventBody
	if err := c.ShouldBindJSON(&b); err != nil {
		s.badRequest(c, "invalid request payload")
		return
	}
	e := &model.Event{UserID: uid(c), Title: b.Title, Description: b.Description, DurationMinutes: b.DurationMinutes}
	if err := s.sched.CreateEvent(c.Request.Context(), e); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEventJSON(e))
}

func (s *server) getEvent(c *gin.Context) {
	e, err := s.sched.Event(c.Request.Context(), uid(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventJSON(e))
}

func (s *server) updateEvent(c *gin.Context) {
	var b eventBody
	if err := c.ShouldBindJSON(&b); err != nil {
		s.badRequest(c, "invalid request payload")
		return
	}
	e := &model.Event{ID: c.Param("id"), UserID: uid(c), Title: b.Title, Description: b.Description, DurationMinutes: b.DurationMinutes}
	if err := s.sched.UpdateEvent(c.Request.Context(), e); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventJSON(e))
}

func (s *server) deleteEvent(c *gin.Context) {
	if err := s.sched.DeleteEvent(c.Request.Context(), uid(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) listAppointments(c *gin.Context) {
	from, to, err := queryRange(c, "from", "to")
	if err != nil {
		s.fail(c, err)
		return
	}
	apts, err := s.sched.Appointments(c.Request.Context(), uid(c), from, to)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]appointmentJSON, len(apts))
	for i := range apts {
		out[i] = toAppointmentJSON(&apts[i])
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createAppointment(c *gin.Context) {
	var b struct {
		EventID      string    `json:"eventId"`
		InviteeEmail string    `json:"inviteeEmail"`
		StartTime    time.Time `json:"startTime"`
		EndTime      time.Time `json:"endTime"`
		Status       string    `json:"status"`
	}
	if err := c.ShouldBindJSON(&b); err != nil {
		s.badRequest(c, "invalid request payload")
		return
	}
	a := &model.Appointment{
		EventID:      b.EventID,
		UserID:       uid(c),
		InviteeEmail: b.InviteeEmail,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       model.Status(b.Status),
	}
	if err := s.sched.CreateAppointment(c.Request.Context(), a); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAppointmentJSON(a))
}

func (s *server) getAppointment(c *gin.Context) {
	a, err := s.sched.Appointment(c.Request.Context(), uid(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toAppointmentJSON(a))
}

func (s *server) setAppointmentStatus(c *gin.Context) {
	var b struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&b); err != nil {
		s.badRequest(c, "invalid request payload")
		return
	}
	a, err := s.sched.SetAppointmentStatus(c.Request.Context(), uid(c), c.Param("id"), b.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toAppointmentJSON(a))
}

func (s *server) deleteAppointment(c *gin.Context) {
	if err := s.sched.DeleteAppointment(c.Request.Context(), uid(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
