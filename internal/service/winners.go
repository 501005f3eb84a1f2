package service

import (
	"context"
	"fmt"
	"strings"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
)

// WinnerService resolves winners and closes rounds.
type WinnerService struct {
	*deps
}

func NewWinnerService(d *deps) *WinnerService {
	return &WinnerService{deps: d}
}

// DeclareWinner makes submissionID the only winner of the current word. Idempotent.
func (s *WinnerService) DeclareWinner(ctx context.Context, submissionID string) (models.Submission, error) {
	var winner models.Submission
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
		if i < 0 {
			return fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
		}
		if subs[i].Word != cfg.CurrentWord {
			return validationErr("submission %s belongs to %q, not the current word %q", submissionID, subs[i].Word, cfg.CurrentWord)
		}
		winner, err = s.markWinner(ctx, tx, subs, i)
		return err
	})
	return winner, err
}

// ClearWinner removes the winner mark from every submission of the current word.
func (s *WinnerService) ClearWinner(ctx context.Context) error {
	return s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		if !clearWinners(subs, cfg.CurrentWord) {
			return nil
		}
		if err := tx.Contest().SaveSubmissions(ctx, subs); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, models.EventWinnerCleared, fmt.Sprintf("Winner cleared for %q", cfg.CurrentWord),
			map[string]any{"word": cfg.CurrentWord})
	})
}

// AutoDeclareTopVoted declares the first entry of the current tally.
func (s *WinnerService) AutoDeclareTopVoted(ctx context.Context) (models.Submission, error) {
	var winner models.Submission
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		ranked, err := s.tally(ctx, tx, "")
		if err != nil {
			return err
		}
		if len(ranked) == 0 {
			return ErrNoSubmissions
		}
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		winner, err = s.markWinner(ctx, tx, subs, indexByID(subs, ranked[0].Submission.ID))
		return err
	})
	return winner, err
}

// GetWinner returns the winning submission for word (current word if empty), or nil.
func (s *WinnerService) GetWinner(ctx context.Context, word string) (*models.Submission, error) {
	var out *models.Submission
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		out, err = s.winner(ctx, tx, word)
		return err
	})
	return out, err
}

// ArchiveRound snapshots the current round into the archive. Submissions are kept.
func (s *WinnerService) ArchiveRound(ctx context.Context) (models.ArchiveEntry, error) {
	var entry models.ArchiveEntry
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		entry, err = s.archiveRound(ctx, tx)
		return err
	})
	return entry, err
}

// ResetForNewRound archives the current round and opens writing for newWord.
func (s *WinnerService) ResetForNewRound(ctx context.Context, newWord string) (models.ArchiveEntry, models.ContestConfig, error) {
	newWord = strings.TrimSpace(newWord)
	if newWord == "" {
		return models.ArchiveEntry{}, models.ContestConfig{}, validationErr("new word must not be empty")
	}

	var (
		entry models.ArchiveEntry
		cfg   models.ContestConfig
	)
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		if entry, err = s.archiveRound(ctx, tx); err != nil {
			return err
		}
		if cfg, err = s.loadConfig(ctx, tx); err != nil {
			return err
		}
		if err := s.changeWord(ctx, tx, &cfg, newWord); err != nil {
			return err
		}
		if err := s.changePhase(ctx, tx, &cfg, models.PhaseWriting); err != nil {
			return err
		}
		cfg.ChallengeMonth = s.clock().Format(monthLayout)
		s.touch(&cfg)
		if err := tx.Contest().SaveConfig(ctx, cfg); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, models.EventRoundStarted, fmt.Sprintf("Round started for %q", newWord),
			map[string]any{"word": newWord, "month": cfg.ChallengeMonth})
	})
	if err != nil {
		return models.ArchiveEntry{}, models.ContestConfig{}, err
	}
	return entry, cfg, nil
}

// ResetDatabase wipes every document and the event log, then seeds the defaults again.
func (s *WinnerService) ResetDatabase(ctx context.Context) error {
	return s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		if err := tx.Documents().ClearAll(ctx); err != nil {
			return err
		}
		if err := tx.Events().Clear(ctx); err != nil {
			return err
		}
		if err := s.seedDefaults(ctx, tx); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, models.EventDatabaseReset, "Database reset to defaults", nil)
	})
}

// ListArchives returns archive entries oldest first.
func (s *WinnerService) ListArchives(ctx context.Context) ([]models.ArchiveEntry, error) {
	var out []models.ArchiveEntry
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		out, err = tx.Contest().Archives(ctx)
		return err
	})
	return out, err
}

// markWinner clears the winner flag across subs[i]'s word, sets it on subs[i] and saves.
func (d *deps) markWinner(ctx context.Context, tx repository.Tx, subs []models.Submission, i int) (models.Submission, error) {
	clearWinners(subs, subs[i].Word)
	subs[i].IsWinner = true
	if err := tx.Contest().SaveSubmissions(ctx, subs); err != nil {
		return models.Submission{}, err
	}
	w := subs[i]
	err := d.appendEvent(ctx, tx, models.EventWinnerDeclared, fmt.Sprintf("%s won %q with %q", w.Username, w.Word, w.Title),
		map[string]any{"submission_id": w.ID, "user_id": w.UserID, "word": w.Word, "votes": w.Votes()})
	return w, err
}

func (d *deps) winner(ctx context.Context, tx repository.Tx, word string) (*models.Submission, error) {
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
	for i := range subs {
		if subs[i].Word == word && subs[i].IsWinner {
			w := subs[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (d *deps) archiveRound(ctx context.Context, tx repository.Tx) (models.ArchiveEntry, error) {
	cfg, err := d.loadConfig(ctx, tx)
	if err != nil {
		return models.ArchiveEntry{}, err
	}
	subs, err := tx.Contest().Submissions(ctx)
	if err != nil {
		return models.ArchiveEntry{}, err
	}
	w, err := d.winner(ctx, tx, cfg.CurrentWord)
	if err != nil {
		return models.ArchiveEntry{}, err
	}

	entry := models.ArchiveEntry{
		Word:             cfg.CurrentWord,
		Month:            cfg.ChallengeMonth,
		WinnerUsername:   models.NoWinnerUsername,
		WinnerTitle:      models.NoWinnerTitle,
		TotalSubmissions: len(forWord(subs, cfg.CurrentWord)),
		ArchivedAt:       d.clock(),
	}
	if w != nil {
		entry.WinnerID = w.ID
		entry.WinnerUsername = w.Username
		entry.WinnerTitle = w.Title
	}

	archives, err := tx.Contest().Archives(ctx)
	if err != nil {
		return models.ArchiveEntry{}, err
	}
	if err := tx.Contest().SaveArchives(ctx, append(archives, entry)); err != nil {
		return models.ArchiveEntry{}, err
	}
	err = d.appendEvent(ctx, tx, models.EventRoundArchived, fmt.Sprintf("Round %q archived", entry.Word),
		map[string]any{"word": entry.Word, "month": entry.Month, "winner": entry.WinnerUsername, "total_submissions": entry.TotalSubmissions})
	return entry, err
}

// clearWinners unsets IsWinner for word and reports whether anything changed.
func clearWinners(subs []models.Submission, word string) bool {
	changed := false
	for i := range subs {
		if subs[i].Word == word && subs[i].IsWinner {
			subs[i].IsWinner = false
			changed = true
		}
	}
	return changed
}
