package service

import (
	"context"
	"time"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"

	"github.com/google/uuid"
)

// Identity manages accounts, credentials, bearer tokens and the current-user session.
type Identity interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.Profile, error)
	GetSession(ctx context.Context) (*models.Profile, error)
	SetSession(ctx context.Context, user *models.User) error
	IssueToken(user models.User) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Config owns the contest configuration and is the only place phase flags change.
type Config interface {
	Get(ctx context.Context) (models.ContestConfig, error)
	Update(ctx context.Context, p ConfigPatch) (models.ContestConfig, error)
	SetPhase(ctx context.Context, p models.Phase) (models.ContestConfig, error)
	SetWritingPhase(ctx context.Context, active bool) (models.ContestConfig, error)
	SetVotingPhase(ctx context.Context, active bool) (models.ContestConfig, error)
	TogglePhase(ctx context.Context, p models.Phase) (models.ContestConfig, error)
	SetWord(ctx context.Context, word string) (models.ContestConfig, error)
}

// Submissions stores entries, at most one per user per word.
type Submissions interface {
	Create(ctx context.Context, userID, username, title, content string) (models.Submission, error)
	ListForWord(ctx context.Context, word string) ([]models.Submission, error)
	ListCurrent(ctx context.Context) ([]models.Submission, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	HasSubmitted(ctx context.Context, userID, word string) (bool, error)
}

// Voting enforces one vote per user per round and ranks submissions.
type Voting interface {
	HasVotedThisRound(ctx context.Context, userID string) (bool, error)
	Vote(ctx context.Context, userID, submissionID string) (models.Submission, error)
	Tally(ctx context.Context, word string) ([]models.TallyEntry, error)
}

// Winners marks winners, archives rounds and performs resets.
type Winners interface {
	DeclareWinner(ctx context.Context, submissionID string) (models.Submission, error)
	ClearWinner(ctx context.Context) error
	AutoDeclareTopVoted(ctx context.Context) (models.Submission, error)
	GetWinner(ctx context.Context, word string) (*models.Submission, error)
	ArchiveRound(ctx context.Context) (models.ArchiveEntry, error)
	ResetForNewRound(ctx context.Context, newWord string) (models.ArchiveEntry, models.ContestConfig, error)
	ResetDatabase(ctx context.Context) error
	ListArchives(ctx context.Context) ([]models.ArchiveEntry, error)
}

// Admin is the privileged control plane. Authorization happens before these are called.
type Admin interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
	Export(ctx context.Context) (models.ExportBundle, error)
}

// Monitoring exposes the read-only round snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.ContestState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ContestEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Identity
	Config
	Submissions
	Voting
	Winners
	Admin
	Monitoring
	EventLog

	deps *deps
}

// NewService wires the transactional store into concrete services.
func NewService(store repository.Transactor, opts Options) *Service {
	d := &deps{store: store, opts: opts.withDefaults(), now: time.Now}
	return &Service{
		Identity:    NewIdentityService(d),
		Config:      NewConfigService(d),
		Submissions: NewSubmissionService(d),
		Voting:      NewVotingService(d),
		Winners:     NewWinnerService(d),
		Admin:       NewAdminService(d),
		Monitoring:  NewMonitoringService(d),
		EventLog:    NewEventLogService(d),
		deps:        d,
	}
}

// Bootstrap seeds the default config, the admin account and empty collections when missing.
func (s *Service) Bootstrap(ctx context.Context) error {
	return s.deps.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		return s.deps.seedDefaults(ctx, tx)
	})
}

// deps is shared by every sub-service.
type deps struct {
	store repository.Transactor
	opts  Options
	now   func() time.Time
}

func (d *deps) atomic(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return d.store.Atomic(ctx, fn)
}

func (d *deps) clock() time.Time {
	return d.now().UTC()
}

// loadConfig returns the stored config, or the baseline when none was written yet.
func (d *deps) loadConfig(ctx context.Context, tx repository.Tx) (models.ContestConfig, error) {
	cfg, err := tx.Contest().Config(ctx)
	if err != nil {
		return models.ContestConfig{}, err
	}
	if cfg == nil {
		return d.baselineConfig(), nil
	}
	return *cfg, nil
}

func (d *deps) baselineConfig() models.ContestConfig {
	now := d.clock()
	return models.ContestConfig{
		CurrentWord:     d.opts.DefaultWord,
		IsWritingActive: true,
		IsVotingActive:  false,
		ChallengeMonth:  now.Format(monthLayout),
		LastUpdated:     now,
	}
}

// touch stamps cfg with a strictly later LastUpdated than it had.
func (d *deps) touch(cfg *models.ContestConfig) {
	now := d.clock()
	if !now.After(cfg.LastUpdated) {
		now = cfg.LastUpdated.Add(time.Nanosecond)
	}
	cfg.LastUpdated = now
}

func (d *deps) appendEvent(ctx context.Context, tx repository.Tx, typ, desc string, meta map[string]any) error {
	e := models.ContestEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  d.clock(),
		Type:        typ,
		Description: desc,
	}
	if len(meta) > 0 {
		e.Metadata = meta
	}
	return tx.Events().Append(ctx, e)
}
