package service

import (
	"context"
	"strings"
	"time"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
)

// EventLogService answers audit log queries. Events are written by the other
// services inside their own units of work.
type EventLogService struct {
	*deps
}

func NewEventLogService(d *deps) *EventLogService {
	return &EventLogService{deps: d}
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalized returns f with UTC bounds and an upper-cased type.
func (f LogFilter) normalized() (LogFilter, error) {
	out := LogFilter{
		From:  utcOrZero(f.From),
		To:    utcOrZero(f.To),
		Type:  strings.ToUpper(strings.TrimSpace(f.Type)),
		Limit: f.Limit,
	}
	switch {
	case !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To):
		return LogFilter{}, validationErr("invalid time range: from must be <= to")
	case out.Type != "" && !models.IsEventType(out.Type):
		return LogFilter{}, validationErr("unknown event type %q", out.Type)
	case out.Limit < 0:
		return LogFilter{}, validationErr("limit must not be negative")
	}
	return out, nil
}

// List returns audit events matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ContestEvent, error) {
	f, err := f.normalized()
	if err != nil {
		return nil, err
	}
	var out []models.ContestEvent
	err = s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		out, err = tx.Events().List(ctx, f.From, f.To, f.Type)
		return err
	})
	if err != nil {
		return nil, err
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[len(out)-f.Limit:]
	}
	return out, nil
}
