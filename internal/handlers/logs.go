package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"writing_challenge/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// logQuery is the raw query of GET /admin/logs.
type logQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Type  string `form:"type"`
	Limit int    `form:"limit"`
}

// filter parses the bounds. A date-only "to" covers that whole day.
func (q logQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{Type: q.Type, Limit: q.Limit}
	var err error
	if q.From != "" {
		if f.From, err = parseQueryTime(q.From); err != nil {
			return f, fmt.Errorf("%w: invalid 'from' time; use RFC3339 or YYYY-MM-DD", service.ErrValidation)
		}
	}
	if q.To != "" {
		if f.To, err = parseQueryTime(q.To); err != nil {
			return f, fmt.Errorf("%w: invalid 'to' time; use RFC3339 or YYYY-MM-DD", service.ErrValidation)
		}
		if !strings.ContainsAny(q.To, "T ") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, fmt.Errorf("%w: 'from' must be <= 'to'", service.ErrValidation)
	}
	return f, nil
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}

// @Summary      Contest audit log
// @Description  Events oldest first. Bounds accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD';
// @Description  a date-only 'to' includes that whole day.
// @Tags         admin
// @Produce      json
// @Param        from   query   string  false  "Start of range"  example(2025-03-01)
// @Param        to     query   string  false  "End of range"    example(2025-03-31)
// @Param        type   query   string  false  "Event type"  Enums(PHASE_CHANGE,WORD_CHANGE,SUBMISSION_CREATED,VOTE_CAST,WINNER_DECLARED,WINNER_CLEARED,ROUND_ARCHIVED,ROUND_STARTED,DATABASE_RESET,USER_REGISTERED)
// @Param        limit  query   int     false  "Only the newest N matches"
// @Success      200    {object}  map[string]interface{}  "count, events"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/v1/admin/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	var q logQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logAndJSONError(c, "logs_bad_query", fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}
	f, err := q.filter()
	if err != nil {
		h.logAndJSONError(c, "logs_bad_query", err, "from", q.From, "to", q.To)
		return
	}
	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, "logs_list_failed", err, "from", f.From, "to", f.To, "type", f.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
