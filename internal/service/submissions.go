package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"

	"github.com/google/uuid"
)

// SubmissionService stores contest entries.
type SubmissionService struct {
	*deps
}

func NewSubmissionService(d *deps) *SubmissionService {
	return &SubmissionService{deps: d}
}

// Create adds userID's entry for the current word. Writing must be open.
func (s *SubmissionService) Create(ctx context.Context, userID, username, title, content string) (models.Submission, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	switch {
	case userID == "":
		return models.Submission{}, validationErr("user id is required")
	case title == "":
		return models.Submission{}, validationErr("title is required")
	case content == "":
		return models.Submission{}, validationErr("content is required")
	case utf8.RuneCountInString(title) > maxTitleLen:
		return models.Submission{}, validationErr("title must be at most %d characters", maxTitleLen)
	case utf8.RuneCountInString(content) > maxContentLen:
		return models.Submission{}, validationErr("content must be at most %d characters", maxContentLen)
	}

	var sub models.Submission
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		if !cfg.IsWritingActive {
			return fmt.Errorf("%w: writing phase is not active", ErrPhaseClosed)
		}

		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		if slices.ContainsFunc(subs, func(x models.Submission) bool {
			return x.UserID == userID && x.Word == cfg.CurrentWord
		}) {
			return fmt.Errorf("%w: %q", ErrDuplicateSubmission, cfg.CurrentWord)
		}

		sub = models.Submission{
			ID:          uuid.NewString(),
			UserID:      userID,
			Username:    username,
			Word:        cfg.CurrentWord,
			Title:       title,
			Content:     content,
			VotedBy:     []string{},
			SubmittedAt: s.clock(),
		}
		if err := tx.Contest().SaveSubmissions(ctx, append(subs, sub)); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, models.EventSubmissionCreated, fmt.Sprintf("%s submitted %q", username, title),
			map[string]any{"submission_id": sub.ID, "user_id": userID, "word": sub.Word})
	})
	if err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// ListForWord returns every submission for word in store order.
func (s *SubmissionService) ListForWord(ctx context.Context, word string) ([]models.Submission, error) {
	var out []models.Submission
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		out = forWord(subs, word)
		return nil
	})
	return out, err
}

// ListCurrent returns the submissions for the current word.
func (s *SubmissionService) ListCurrent(ctx context.Context) ([]models.Submission, error) {
	var out []models.Submission
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		out = forWord(subs, cfg.CurrentWord)
		return nil
	})
	return out, err
}

// GetByID returns the submission with id, or nil.
func (s *SubmissionService) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	var out *models.Submission
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		if i := indexByID(subs, id); i >= 0 {
			sub := subs[i]
			out = &sub
		}
		return nil
	})
	return out, err
}

func (s *SubmissionService) HasSubmitted(ctx context.Context, userID, word string) (bool, error) {
	var ok bool
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		ok = slices.ContainsFunc(subs, func(x models.Submission) bool {
			return x.UserID == userID && x.Word == word
		})
		return nil
	})
	return ok, err
}

// forWord never returns nil so empty rounds encode as [].
func forWord(subs []models.Submission, word string) []models.Submission {
	out := []models.Submission{}
	for _, sub := range subs {
		if sub.Word == word {
			out = append(out, sub)
		}
	}
	return out
}

func indexByID(subs []models.Submission, id string) int {
	return slices.IndexFunc(subs, func(x models.Submission) bool { return x.ID == id })
}
