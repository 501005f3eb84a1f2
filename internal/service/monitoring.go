package service

import (
	"context"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
)

type MonitoringService struct {
	*deps
}

func NewMonitoringService(d *deps) *MonitoringService {
	return &MonitoringService{deps: d}
}

// GetState returns the config, phase, tally and winner of the current round as one snapshot.
// If nothing is persisted yet, the baseline config is reported.
func (s *MonitoringService) GetState(ctx context.Context) (models.ContestState, error) {
	var st models.ContestState
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		cfg, err := s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		ranked, err := s.tally(ctx, tx, cfg.CurrentWord)
		if err != nil {
			return err
		}
		w, err := s.winner(ctx, tx, cfg.CurrentWord)
		if err != nil {
			return err
		}
		st = models.ContestState{Config: cfg, Phase: cfg.Phase(), Tally: ranked, Winner: w}
		return nil
	})
	return st, err
}
