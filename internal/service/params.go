package service

import (
	"time"

	"writing_challenge/internal/models"
)

// ConfigPatch is a shallow update of the contest config. Nil fields are left alone.
// Phase flags cannot be patched directly; Phase goes through the state machine.
type ConfigPatch struct {
	CurrentWord    *string
	ChallengeMonth *string
	Phase          *models.Phase
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", or one of the models.Event* constants
	// Limit keeps only the newest Limit matches; 0 means all.
	Limit int
}

// AdminSeed is the account created on first initialization and after a reset.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// Options carries the settings services need from configuration.
type Options struct {
	SigningKey  string
	TokenTTL    time.Duration
	BcryptCost  int
	DefaultWord string
	Admin       AdminSeed
}

const (
	defaultTokenTTL = time.Hour
	defaultWord     = "Resilience"
	monthLayout     = "January 2006"

	maxTitleLen    = 100
	maxContentLen  = 10000
	minUsernameLen = 2
	maxUsernameLen = 50
	minPasswordLen = 6

	maxPasswordBytes = 72 // bcrypt input limit
)

func (o Options) withDefaults() Options {
	if o.TokenTTL <= 0 {
		o.TokenTTL = defaultTokenTTL
	}
	if o.BcryptCost == 0 {
		o.BcryptCost = bcryptDefaultCost
	}
	if o.DefaultWord == "" {
		o.DefaultWord = defaultWord
	}
	return o
}
