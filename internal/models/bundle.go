package models

import "time"

// ExportBundle is every persisted contest document in one JSON structure.
// Users are exported as profiles; credential hashes stay in the store.
type ExportBundle struct {
	Config      ContestConfig  `json:"config"`
	Users       []Profile      `json:"users"`
	Submissions []Submission   `json:"submissions"`
	Archives    []ArchiveEntry `json:"archives"`
	ExportedAt  time.Time      `json:"exported_at"`
}

// Dashboard is the admin overview of the running round.
type Dashboard struct {
	Config      ContestConfig `json:"config"`
	Phase       Phase         `json:"phase"`
	Submissions int           `json:"submissions"`
	Voters      int           `json:"voters"`
	Users       int           `json:"users"`
	Archives    int           `json:"archives"`
	Winner      *Submission   `json:"winner,omitempty"`
}

// ContestState is what readers poll to render the current round.
type ContestState struct {
	Config ContestConfig `json:"config"`
	Phase  Phase         `json:"phase"`
	Tally  []TallyEntry  `json:"tally"`
	Winner *Submission   `json:"winner,omitempty"`
}
