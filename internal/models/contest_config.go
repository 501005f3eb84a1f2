package models

import "time"

// Phase of a contest round.
type Phase string

const (
	PhaseWriting Phase = "writing"
	PhaseVoting  Phase = "voting"
	PhaseResults Phase = "results"
)

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseWriting, PhaseVoting, PhaseResults:
		return true
	}
	return false
}

// ContestConfig is the singleton contest configuration document.
type ContestConfig struct {
	CurrentWord     string    `json:"current_word"`
	IsWritingActive bool      `json:"is_writing_active"`
	IsVotingActive  bool      `json:"is_voting_active"`
	ChallengeMonth  string    `json:"challenge_month"` // e.g. "March 2025"
	LastUpdated     time.Time `json:"last_updated"`
}

// Phase derives the phase from the two flags. Results means neither phase is open.
func (c ContestConfig) Phase() Phase {
	switch {
	case c.IsWritingActive:
		return PhaseWriting
	case c.IsVotingActive:
		return PhaseVoting
	default:
		return PhaseResults
	}
}
