package rest

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scheduling-api/internal/availability"
	"scheduling-api/internal/calendar"
	"scheduling-api/internal/model"
)

type slotJSON struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

func (s *server) slots(c *gin.Context) ([]model.TimeSlot, bool) {
	start, end, err := queryRange(c, "start", "end")
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	slots, err := s.sched.Availability(c.Request.Context(), c.Param("userId"), model.DateRange{StartDate: start, EndDate: end})
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return slots, true
}

func (s *server) availability(c *gin.Context) {
	slots, ok := s.slots(c)
	if !ok {
		return
	}
	out := make([]slotJSON, len(slots))
	for i, sl := range slots {
		out[i] = slotJSON{Start: sl.Start, End: sl.End, Available: sl.Available}
	}
	c.JSON(http.StatusOK, out)
}

// availabilityICS serves the slots as an iCalendar feed. A range with no
// slots has nothing to encode and answers 204.
func (s *server) availabilityICS(c *gin.Context) {
	slots, ok := s.slots(c)
	if !ok {
		return
	}
	if len(slots) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	var buf bytes.Buffer
	if err := calendar.Write(&buf, c.Param("userId"), slots); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="availability.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (s *server) book(c *gin.Context) {
	var b struct {
		Email string    `json:"email"`
		Start time.Time `json:"start"`
	}
	if err := c.ShouldBindJSON(&b); err != nil {
		s.badRequest(c, "invalid request payload")
		return
	}
	a, err := s.sched.Book(c.Request.Context(), c.Param("eventId"), b.Email, b.Start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAppointmentJSON(a))
}

func (s *server) getSchedule(c *gin.Context) {
	w, err := s.sched.Schedule(c.Request.Context(), uid(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *server) putSchedule(c *gin.Context) {
	var w availability.Weekly
	if err := c.ShouldBindJSON(&w); err != nil {
		s.badRequest(c, "invalid availability: "+err.Error())
		return
	}
	if err := s.sched.SetSchedule(c.Request.Context(), uid(c), w); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}
