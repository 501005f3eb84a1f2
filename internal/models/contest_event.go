package models

import "time"

// Contest event types.
const (
	EventPhaseChange       = "PHASE_CHANGE"
	EventWordChange        = "WORD_CHANGE"
	EventSubmissionCreated = "SUBMISSION_CREATED"
	EventVoteCast          = "VOTE_CAST"
	EventWinnerDeclared    = "WINNER_DECLARED"
	EventWinnerCleared     = "WINNER_CLEARED"
	EventRoundArchived     = "ROUND_ARCHIVED"
	EventRoundStarted      = "ROUND_STARTED"
	EventDatabaseReset     = "DATABASE_RESET"
	EventUserRegistered    = "USER_REGISTERED"
)

var eventTypes = map[string]struct{}{
	EventPhaseChange:       {},
	EventWordChange:        {},
	EventSubmissionCreated: {},
	EventVoteCast:          {},
	EventWinnerDeclared:    {},
	EventWinnerCleared:     {},
	EventRoundArchived:     {},
	EventRoundStarted:      {},
	EventDatabaseReset:     {},
	EventUserRegistered:    {},
}

// IsEventType reports whether t is one of the recorded event types.
func IsEventType(t string) bool {
	_, ok := eventTypes[t]
	return ok
}

// ContestEvent is a single audit log entry.
type ContestEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
