package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"writing_challenge/internal/models"
)

// Logical document keys.
const (
	KeyConfig      = "challenge_config"
	KeyUsers       = "challenge_users"
	KeySubmissions = "challenge_submissions"
	KeyArchives    = "challenge_archives"
	KeySession     = "challenge_current_user"
)

// ContestDocs is typed access to the contest documents of one Documents handle.
type ContestDocs struct {
	docs Documents
}

func NewContestDocs(docs Documents) *ContestDocs {
	return &ContestDocs{docs: docs}
}

// Config returns the stored config, or nil if none was saved yet.
func (c *ContestDocs) Config(ctx context.Context) (*models.ContestConfig, error) {
	var cfg models.ContestConfig
	found, err := loadJSON(ctx, c.docs, KeyConfig, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (c *ContestDocs) SaveConfig(ctx context.Context, cfg models.ContestConfig) error {
	return saveJSON(ctx, c.docs, KeyConfig, cfg)
}

// Users returns every stored user in registration order.
func (c *ContestDocs) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := loadJSON(ctx, c.docs, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *ContestDocs) SaveUsers(ctx context.Context, users []models.User) error {
	return saveJSON(ctx, c.docs, KeyUsers, nonNil(users))
}

// Submissions returns every submission of every word, in insertion order.
func (c *ContestDocs) Submissions(ctx context.Context) ([]models.Submission, error) {
	var subs []models.Submission
	if _, err := loadJSON(ctx, c.docs, KeySubmissions, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *ContestDocs) SaveSubmissions(ctx context.Context, subs []models.Submission) error {
	return saveJSON(ctx, c.docs, KeySubmissions, nonNil(subs))
}

// Archives returns every archive entry in archive order.
func (c *ContestDocs) Archives(ctx context.Context) ([]models.ArchiveEntry, error) {
	var archives []models.ArchiveEntry
	if _, err := loadJSON(ctx, c.docs, KeyArchives, &archives); err != nil {
		return nil, err
	}
	return archives, nil
}

func (c *ContestDocs) SaveArchives(ctx context.Context, archives []models.ArchiveEntry) error {
	return saveJSON(ctx, c.docs, KeyArchives, nonNil(archives))
}

// Session returns the current session profile, or nil when nobody is signed in.
func (c *ContestDocs) Session(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	found, err := loadJSON(ctx, c.docs, KeySession, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (c *ContestDocs) SaveSession(ctx context.Context, p models.Profile) error {
	return saveJSON(ctx, c.docs, KeySession, p)
}

func (c *ContestDocs) ClearSession(ctx context.Context) error {
	return c.docs.Clear(ctx, KeySession)
}

// loadJSON decodes the document under key into dst. It reports false when the key is absent.
func loadJSON(ctx context.Context, docs Documents, key string, dst any) (bool, error) {
	raw, err := docs.Load(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode document %q: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, docs Documents, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	return docs.Save(ctx, key, raw)
}

// nonNil keeps empty lists stored as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
