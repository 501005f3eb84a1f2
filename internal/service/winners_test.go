package service

import (
	"context"
	"testing"
	"time"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func winnersOf(t *testing.T, svc *Service, word string) []string {
	t.Helper()
	subs, err := svc.ListForWord(context.Background(), word)
	require.NoError(t, err)
	var ids []string
	for _, s := range subs {
		if s.IsWinner {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestWinnerService_DeclareWinner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	s1 := mustSubmit(t, svc, mustRegister(t, svc, "alice"), "one")
	s2 := mustSubmit(t, svc, mustRegister(t, svc, "bob"), "two")

	w, err := svc.DeclareWinner(ctx, s1.ID)
	require.NoError(t, err)
	assert.True(t, w.IsWinner)

	_, err = svc.DeclareWinner(ctx, s2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s2.ID}, winnersOf(t, svc, "Home"))

	// Idempotent.
	_, err = svc.DeclareWinner(ctx, s2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s2.ID}, winnersOf(t, svc, "Home"))

	got, err := svc.GetWinner(ctx, "Home")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s2.ID, got.ID)
}

func TestWinnerService_DeclareWinner_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	old := mustSubmit(t, svc, mustRegister(t, svc, "alice"), "old")

	_, err := svc.DeclareWinner(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetWord(ctx, "Trust")
	require.NoError(t, err)
	_, err = svc.DeclareWinner(ctx, old.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, winnersOf(t, svc, "Home"))
}

func TestWinnerService_ClearWinner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	s1 := mustSubmit(t, svc, mustRegister(t, svc, "alice"), "one")

	require.NoError(t, svc.ClearWinner(ctx), "nothing to clear")
	assert.Empty(t, eventsOfType(t, svc, models.EventWinnerCleared))

	_, err := svc.DeclareWinner(ctx, s1.ID)
	require.NoError(t, err)
	require.NoError(t, svc.ClearWinner(ctx))

	got, err := svc.GetWinner(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, eventsOfType(t, svc, models.EventWinnerCleared), 1)
}

func TestWinnerService_AutoDeclareTopVoted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AutoDeclareTopVoted(ctx)
	assert.ErrorIs(t, err, ErrNoSubmissions)

	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	mustSubmit(t, svc, alice, "one")
	s2 := mustSubmit(t, svc, bob, "two")
	mustPhase(t, svc, models.PhaseVoting)
	_, err = svc.Vote(ctx, alice.ID, s2.ID)
	require.NoError(t, err)

	w, err := svc.AutoDeclareTopVoted(ctx)
	require.NoError(t, err)
	assert.Equal(t, s2.ID, w.ID)
	assert.Equal(t, []string{s2.ID}, winnersOf(t, svc, "Home"))
}

func TestWinnerService_AutoDeclare_TieGoesToEarliest(t *testing.T) {
	svc, _ := newTestService(t)
	s1 := mustSubmit(t, svc, mustRegister(t, svc, "alice"), "one")
	mustSubmit(t, svc, mustRegister(t, svc, "bob"), "two")

	w, err := svc.AutoDeclareTopVoted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s1.ID, w.ID)
}

func TestWinnerService_ArchiveRound(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()
	mustSubmit(t, svc, mustRegister(t, svc, "alice"), "one")

	clk.Advance(time.Minute)
	entry, err := svc.ArchiveRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ArchiveEntry{
		Word:             "Home",
		Month:            "March 2025",
		WinnerUsername:   models.NoWinnerUsername,
		WinnerTitle:      models.NoWinnerTitle,
		TotalSubmissions: 1,
		ArchivedAt:       clk.Now(),
	}, entry)

	subs, err := svc.ListForWord(ctx, "Home")
	require.NoError(t, err)
	assert.Len(t, subs, 1, "archiving keeps submissions")

	archives, err := svc.ListArchives(ctx)
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "Home", archives[0].Word)
}

func TestWinnerService_ResetForNewRound(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")
	s1 := mustSubmit(t, svc, alice, "one")
	mustSubmit(t, svc, mustRegister(t, svc, "bob"), "two")
	_, err := svc.DeclareWinner(ctx, s1.ID)
	require.NoError(t, err)
	mustPhase(t, svc, models.PhaseResults)

	clk.Set(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	entry, cfg, err := svc.ResetForNewRound(ctx, " Trust ")
	require.NoError(t, err)

	assert.Equal(t, "Home", entry.Word)
	assert.Equal(t, s1.ID, entry.WinnerID)
	assert.Equal(t, "alice", entry.WinnerUsername)
	assert.Equal(t, "one", entry.WinnerTitle)
	assert.Equal(t, 2, entry.TotalSubmissions)

	assert.Equal(t, "Trust", cfg.CurrentWord)
	assert.Equal(t, "April 2025", cfg.ChallengeMonth)
	assert.True(t, cfg.IsWritingActive)
	assert.False(t, cfg.IsVotingActive)

	archives, err := svc.ListArchives(ctx)
	require.NoError(t, err)
	assert.Len(t, archives, 1)
	assert.Len(t, eventsOfType(t, svc, models.EventRoundStarted), 1)

	current, err := svc.ListCurrent(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestWinnerService_ResetForNewRound_EmptyWord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.ResetForNewRound(ctx, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	archives, err := svc.ListArchives(ctx)
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestWinnerService_ResetDatabase(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")
	mustSubmit(t, svc, alice, "one")
	require.NoError(t, svc.SetSession(ctx, &alice))
	_, _, err := svc.ResetForNewRound(ctx, "Trust")
	require.NoError(t, err)

	clk.Set(time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, svc.ResetDatabase(ctx))

	cfg, err := svc.Config.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home", cfg.CurrentWord)
	assert.Equal(t, "June 2025", cfg.ChallengeMonth)
	assert.Equal(t, models.PhaseWriting, cfg.Phase())

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin)

	archives, err := svc.ListArchives(ctx)
	require.NoError(t, err)
	assert.Empty(t, archives)

	subs, err := svc.ListForWord(ctx, "Home")
	require.NoError(t, err)
	assert.Empty(t, subs)

	session, err := svc.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	evs, err := svc.EventLog.List(ctx, LogFilter{})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, models.EventDatabaseReset, evs[0].Type)

	var keys []string
	require.NoError(t, svc.deps.store.Atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		keys, err = tx.Documents().Keys(ctx)
		return err
	}))
	assert.ElementsMatch(t, []string{repository.KeyConfig, repository.KeyUsers, repository.KeySubmissions, repository.KeyArchives}, keys)
}
