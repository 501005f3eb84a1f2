package models

import (
	"encoding/json"
	"slices"
	"time"
)

// Submission is one user's entry for one word. VotedBy is the authoritative voter set;
// the vote count is always derived from it.
type Submission struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Word        string    `json:"word"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	VotedBy     []string  `json:"voted_by"`
	SubmittedAt time.Time `json:"submitted_at"`
	IsWinner    bool      `json:"is_winner"`
}

// Votes is the number of distinct voters.
func (s Submission) Votes() int {
	return len(s.VotedBy)
}

// HasVoter reports whether userID already voted for s.
func (s Submission) HasVoter(userID string) bool {
	return slices.Contains(s.VotedBy, userID)
}

// MarshalJSON adds the derived vote count for readers. It is ignored on decode.
func (s Submission) MarshalJSON() ([]byte, error) {
	type plain Submission
	votedBy := s.VotedBy
	if votedBy == nil {
		votedBy = []string{}
	}
	p := plain(s)
	p.VotedBy = votedBy
	return json.Marshal(struct {
		plain
		Votes int `json:"votes"`
	}{plain: p, Votes: len(votedBy)})
}

// TallyEntry is a submission with its 1-based rank in the tally.
type TallyEntry struct {
	Rank       int        `json:"rank"`
	Submission Submission `json:"submission"`
}
