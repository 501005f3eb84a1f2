package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
)

// VotingService enforces one vote per user per round.
type VotingService struct {
	*deps
}

func NewVotingService(d *deps) *VotingService {
	return &VotingService{deps: d}
}

// HasVotedThisRound reports whether userID voted for any submission of the current word.
func (s *VotingService) HasVotedThisRound(ctx context.Context, userID string) (bool, error) {
	var voted bool
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		voted = votedFor(subs, cfg.CurrentWord, userID)
		return nil
	})
	return voted, err
}

// Vote records userID's single vote of the round for submissionID.
//
// Checks run in a fixed order: phase, already voted, existence, self-vote. A vote for one's own
// submission that fails an earlier check also matches ErrSelfVote.
func (s *VotingService) Vote(ctx context.Context, userID, submissionID string) (models.Submission, error) {
	if userID == "" {
		return models.Submission{}, validationErr("user id is required")
	}

	var voted models.Submission
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}

		i := indexByID(subs, submissionID)
		own := i >= 0 && subs[i].UserID == userID
		// Only entries for the current word can receive votes.
		if i >= 0 && subs[i].Word != cfg.CurrentWord {
			i = -1
		}

		var reason error
		switch {
		case !cfg.IsVotingActive:
			reason = fmt.Errorf("%w: voting phase is not active", ErrPhaseClosed)
		case votedFor(subs, cfg.CurrentWord, userID):
			reason = ErrAlreadyVoted
		case i < 0:
			reason = fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
		case own:
			return ErrSelfVote
		}
		if reason != nil {
			if own {
				return errors.Join(reason, ErrSelfVote)
			}
			return reason
		}

		subs[i].VotedBy = append(subs[i].VotedBy, userID)
		if err := tx.Contest().SaveSubmissions(ctx, subs); err != nil {
			return err
		}
		voted = subs[i]
		return s.appendEvent(ctx, tx, models.EventVoteCast, fmt.Sprintf("Vote cast for %q", voted.Title),
			map[string]any{"submission_id": voted.ID, "user_id": userID, "word": voted.Word})
	})
	if err != nil {
		return models.Submission{}, err
	}
	return voted, nil
}

// Tally ranks the submissions for word by votes. Ties keep submission order.
// An empty word means the current word.
func (s *VotingService) Tally(ctx context.Context, word string) ([]models.TallyEntry, error) {
	var out []models.TallyEntry
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		out, err = s.tally(ctx, tx, word)
		return err
	})
	return out, err
}

func (d *deps) tally(ctx context.Context, tx repository.Tx, word string) ([]models.TallyEntry, error) {
	if word == "" {
		cfg, err := d.loadConfig(ctx, tx)
		if err != nil {
			return nil, err
		}
		word = cfg.CurrentWord
	}
	subs, err := tx.Contest().Submissions(ctx)
	if err != nil {
		return nil, err
	}
	return rank(forWord(subs, word)), nil
}

func rank(subs []models.Submission) []models.TallyEntry {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Votes() > subs[j].Votes()
	})
	out := make([]models.TallyEntry, 0, len(subs))
	for i, sub := range subs {
		out = append(out, models.TallyEntry{Rank: i + 1, Submission: sub})
	}
	return out
}

func votedFor(subs []models.Submission, word, userID string) bool {
	return slices.ContainsFunc(subs, func(x models.Submission) bool {
		return x.Word == word && x.HasVoter(userID)
	})
}
