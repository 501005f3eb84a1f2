package models

import "time"

// Sentinels stored when a round is archived without a winner.
const (
	NoWinnerUsername = "No winner"
	NoWinnerTitle    = "N/A"
)

// ArchiveEntry is the permanent record of a completed round.
type ArchiveEntry struct {
	Word             string    `json:"word"`
	Month            string    `json:"month"`
	WinnerID         string    `json:"winner_id,omitempty"`
	WinnerUsername   string    `json:"winner_username"`
	WinnerTitle      string    `json:"winner_title"`
	TotalSubmissions int       `json:"total_submissions"`
	ArchivedAt       time.Time `json:"archived_at"`
}
