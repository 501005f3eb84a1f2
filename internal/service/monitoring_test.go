package service

import (
	"context"
	"testing"

	"writing_challenge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitoringService_GetState(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	st, err := svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseWriting, st.Phase)
	assert.Empty(t, st.Tally)
	assert.NotNil(t, st.Tally)
	assert.Nil(t, st.Winner)

	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	s1 := mustSubmit(t, svc, alice, "one")
	s2 := mustSubmit(t, svc, bob, "two")
	mustPhase(t, svc, models.PhaseVoting)
	_, err = svc.Vote(ctx, alice.ID, s2.ID)
	require.NoError(t, err)
	_, err = svc.DeclareWinner(ctx, s2.ID)
	require.NoError(t, err)

	st, err = svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseVoting, st.Phase)
	require.Len(t, st.Tally, 2)
	assert.Equal(t, s2.ID, st.Tally[0].Submission.ID)
	assert.Equal(t, s1.ID, st.Tally[1].Submission.ID)
	require.NotNil(t, st.Winner)
	assert.Equal(t, s2.ID, st.Winner.ID)
}
