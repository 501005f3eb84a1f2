package service

import (
	"context"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
)

// AdminService builds the read-only admin views. Admin mutations go through Config and Winners.
type AdminService struct {
	*deps
}

func NewAdminService(d *deps) *AdminService {
	return &AdminService{deps: d}
}

// Dashboard summarizes the running round.
func (s *AdminService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var out models.Dashboard
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		users, err := tx.Contest().Users(ctx)
		if err != nil {
			return err
		}
		archives, err := tx.Contest().Archives(ctx)
		if err != nil {
			return err
		}
		w, err := s.winner(ctx, tx, cfg.CurrentWord)
		if err != nil {
			return err
		}

		current := forWord(subs, cfg.CurrentWord)
		voters := make(map[string]struct{})
		for _, sub := range current {
			for _, id := range sub.VotedBy {
				voters[id] = struct{}{}
			}
		}
		out = models.Dashboard{
			Config:      cfg,
			Phase:       cfg.Phase(),
			Submissions: len(current),
			Voters:      len(voters),
			Users:       len(users),
			Archives:    len(archives),
			Winner:      w,
		}
		return nil
	})
	return out, err
}

// Export returns every contest document. Users are exported without credential hashes.
func (s *AdminService) Export(ctx context.Context) (models.ExportBundle, error) {
	var out models.ExportBundle
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		users, err := tx.Contest().Users(ctx)
		if err != nil {
			return err
		}
		subs, err := tx.Contest().Submissions(ctx)
		if err != nil {
			return err
		}
		archives, err := tx.Contest().Archives(ctx)
		if err != nil {
			return err
		}
		out = models.ExportBundle{
			Config:      cfg,
			Users:       profiles(users),
			Submissions: subs,
			Archives:    archives,
			ExportedAt:  s.clock(),
		}
		return nil
	})
	return out, err
}
