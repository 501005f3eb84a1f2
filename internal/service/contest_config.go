package service

import (
	"context"
	"fmt"
	"strings"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
)

// ConfigService owns the contest configuration document.
type ConfigService struct {
	*deps
}

func NewConfigService(d *deps) *ConfigService {
	return &ConfigService{deps: d}
}

// Get returns the current config, or the baseline if none was stored yet.
func (s *ConfigService) Get(ctx context.Context) (models.ContestConfig, error) {
	var cfg models.ContestConfig
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		cfg, err = s.loadConfig(ctx, tx)
		return err
	})
	return cfg, err
}

// Update applies a shallow patch. LastUpdated always advances.
func (s *ConfigService) Update(ctx context.Context, p ConfigPatch) (models.ContestConfig, error) {
	if p.CurrentWord != nil && strings.TrimSpace(*p.CurrentWord) == "" {
		return models.ContestConfig{}, validationErr("word must not be empty")
	}
	if p.ChallengeMonth != nil && strings.TrimSpace(*p.ChallengeMonth) == "" {
		return models.ContestConfig{}, validationErr("challenge month must not be empty")
	}
	if p.Phase != nil && !p.Phase.Valid() {
		return models.ContestConfig{}, validationErr("unknown phase %q", *p.Phase)
	}

	var cfg models.ContestConfig
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		cfg, err = s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		if p.CurrentWord != nil {
			if err := s.changeWord(ctx, tx, &cfg, strings.TrimSpace(*p.CurrentWord)); err != nil {
				return err
			}
		}
		if p.ChallengeMonth != nil {
			cfg.ChallengeMonth = strings.TrimSpace(*p.ChallengeMonth)
		}
		if p.Phase != nil {
			if err := s.changePhase(ctx, tx, &cfg, *p.Phase); err != nil {
				return err
			}
		}
		s.touch(&cfg)
		return tx.Contest().SaveConfig(ctx, cfg)
	})
	return cfg, err
}

// SetPhase moves the contest into p.
func (s *ConfigService) SetPhase(ctx context.Context, p models.Phase) (models.ContestConfig, error) {
	if !p.Valid() {
		return models.ContestConfig{}, validationErr("unknown phase %q", p)
	}
	return s.movePhase(ctx, func(models.ContestConfig) models.Phase { return p })
}

// SetWritingPhase opens writing (closing voting) or closes it into results.
// Closing writing while it is not open leaves the phase as is.
func (s *ConfigService) SetWritingPhase(ctx context.Context, active bool) (models.ContestConfig, error) {
	return s.movePhase(ctx, func(cur models.ContestConfig) models.Phase {
		return flagTarget(cur, models.PhaseWriting, active)
	})
}

// SetVotingPhase opens voting (closing writing) or closes it into results.
func (s *ConfigService) SetVotingPhase(ctx context.Context, active bool) (models.ContestConfig, error) {
	return s.movePhase(ctx, func(cur models.ContestConfig) models.Phase {
		return flagTarget(cur, models.PhaseVoting, active)
	})
}

// TogglePhase flips the writing or voting phase.
func (s *ConfigService) TogglePhase(ctx context.Context, p models.Phase) (models.ContestConfig, error) {
	if p != models.PhaseWriting && p != models.PhaseVoting {
		return models.ContestConfig{}, validationErr("only writing and voting can be toggled, got %q", p)
	}
	return s.movePhase(ctx, func(cur models.ContestConfig) models.Phase {
		return flagTarget(cur, p, cur.Phase() != p)
	})
}

// SetWord replaces the current word and stamps the month label.
// It neither archives nor changes phase; ResetForNewRound does both.
func (s *ConfigService) SetWord(ctx context.Context, word string) (models.ContestConfig, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return models.ContestConfig{}, validationErr("word must not be empty")
	}

	var cfg models.ContestConfig
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		cfg, err = s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		if err := s.changeWord(ctx, tx, &cfg, word); err != nil {
			return err
		}
		cfg.ChallengeMonth = s.clock().Format(monthLayout)
		s.touch(&cfg)
		return tx.Contest().SaveConfig(ctx, cfg)
	})
	return cfg, err
}

func (s *ConfigService) movePhase(ctx context.Context, pick func(cur models.ContestConfig) models.Phase) (models.ContestConfig, error) {
	var cfg models.ContestConfig
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		cfg, err = s.loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		if err := s.changePhase(ctx, tx, &cfg, pick(cfg)); err != nil {
			return err
		}
		s.touch(&cfg)
		return tx.Contest().SaveConfig(ctx, cfg)
	})
	return cfg, err
}

// flagTarget is the phase reached by setting phase p's flag to active.
func flagTarget(cur models.ContestConfig, p models.Phase, active bool) models.Phase {
	if active {
		return p
	}
	if cur.Phase() == p {
		return models.PhaseResults
	}
	return cur.Phase()
}

// changePhase is the single transition point for the phase flags. At most one flag is ever set.
func (d *deps) changePhase(ctx context.Context, tx repository.Tx, cfg *models.ContestConfig, to models.Phase) error {
	from := cfg.Phase()
	switch to {
	case models.PhaseWriting:
		cfg.IsWritingActive, cfg.IsVotingActive = true, false
	case models.PhaseVoting:
		cfg.IsWritingActive, cfg.IsVotingActive = false, true
	case models.PhaseResults:
		cfg.IsWritingActive, cfg.IsVotingActive = false, false
	default:
		return validationErr("unknown phase %q", to)
	}
	if from == to {
		return nil
	}
	return d.appendEvent(ctx, tx, models.EventPhaseChange, fmt.Sprintf("Phase changed from %s to %s", from, to),
		map[string]any{"from": from, "to": to})
}

// changeWord replaces the current word. The phase is left alone.
func (d *deps) changeWord(ctx context.Context, tx repository.Tx, cfg *models.ContestConfig, word string) error {
	prev := cfg.CurrentWord
	cfg.CurrentWord = word
	if prev == word {
		return nil
	}
	return d.appendEvent(ctx, tx, models.EventWordChange, fmt.Sprintf("Word changed from %q to %q", prev, word),
		map[string]any{"from": prev, "to": word})
}
