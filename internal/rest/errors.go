package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling-api/internal/apperr"
)

var statusOf = map[apperr.Kind]int{
	apperr.KindInvalidArgument:     http.StatusBadRequest,
	apperr.KindNotFound:            http.StatusNotFound,
	apperr.KindNoSchedule:          http.StatusNotFound,
	apperr.KindInvalidAvailability: http.StatusUnprocessableEntity,
	apperr.KindConflict:            http.StatusConflict,
	apperr.KindUnauthenticated:     http.StatusUnauthorized,
}

// fail writes err as {"error", "code"}; unclassified errors are logged and
// reported as a bare 500.
func (s *server) fail(c *gin.Context, err error) {
	k := apperr.KindOf(err)
	code, ok := statusOf[k]
	if !ok {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		code = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(code, gin.H{"error": apperr.Message(err), "code": k.String()})
}

func (s *server) badRequest(c *gin.Context, msg string) {
	s.fail(c, apperr.Invalid("%s", msg))
}

// parseTime accepts RFC 3339 timestamps and bare YYYY-MM-DD dates (UTC).
func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

// queryRange reads ?start=&end= (or ?from=&to=); missing values stay zero.
func queryRange(c *gin.Context, startKey, endKey string) (start, end time.Time, err error) {
	if v := c.Query(startKey); v != "" {
		if start, err = parseTime(v); err != nil {
			return start, end, apperr.Invalid("bad %s %q", startKey, v)
		}
	}
	if v := c.Query(endKey); v != "" {
		if end, err = parseTime(v); err != nil {
			return start, end, apperr.Invalid("bad %s %q", endKey, v)
		}
	}
	return start, end, nil
}
