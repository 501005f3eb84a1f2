package service

import (
	"context"
	"fmt"
	"slices"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"

	"github.com/google/uuid"
)

// seedDefaults writes whatever a fresh store is missing: the baseline config, one admin
// account and empty submission and archive lists. Present documents are left untouched.
func (d *deps) seedDefaults(ctx context.Context, tx repository.Tx) error {
	c := tx.Contest()

	cfg, err := c.Config(ctx)
	if err != nil {
		return err
	}
	if cfg == nil {
		if err := c.SaveConfig(ctx, d.baselineConfig()); err != nil {
			return err
		}
	}

	users, err := c.Users(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(users, func(u models.User) bool { return u.IsAdmin }) {
		admin, err := d.newAdmin()
		if err != nil {
			return err
		}
		if err := c.SaveUsers(ctx, append(users, admin)); err != nil {
			return err
		}
	}

	for _, key := range []string{repository.KeySubmissions, repository.KeyArchives} {
		raw, err := tx.Documents().Load(ctx, key)
		if err != nil {
			return err
		}
		if raw == nil {
			if err := tx.Documents().Save(ctx, key, []byte("[]")); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *deps) newAdmin() (models.User, error) {
	seed := d.opts.Admin
	email, err := normalizeEmail(seed.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("admin seed: %w", err)
	}
	hash, err := d.hashPassword(seed.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("admin seed: %w", err)
	}
	return models.User{
		ID:           uuid.NewString(),
		Username:     seed.Username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    d.clock(),
	}, nil
}
