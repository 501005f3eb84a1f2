package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
	"writing_challenge/internal/repository/db"
	"writing_challenge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newContestRouter serves real services over a fresh SQLite file.
func newContestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	conn, err := db.InitDB(ctx, filepath.Join(t.TempDir(), "api.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	svc := service.NewService(repository.NewRepository(conn), service.Options{
		SigningKey:  "handler-test-key",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
		DefaultWord: "Home",
		Admin:       service.AdminSeed{Username: "Admin", Email: "admin@example.com", Password: "admin123"},
	})
	require.NoError(t, svc.Bootstrap(ctx))
	return newTestRouter(svc)
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func signUpAndIn(t *testing.T, r http.Handler, username string) (string, models.Profile) {
	t.Helper()
	email := username + "@example.com"
	w := doJSON(t, r, http.MethodPost, "/auth/sign-up", "", gin.H{"username": username, "email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return signIn(t, r, email, "secret1")
}

func signIn(t *testing.T, r http.Handler, email, password string) (string, models.Profile) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/sign-in", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[struct {
		Token string         `json:"token"`
		User  models.Profile `json:"user"`
	}](t, w)
	require.NotEmpty(t, out.Token)
	return out.Token, out.User
}

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	r := newContestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/sign-up", "", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodPost, "/auth/sign-up", "", gin.H{"username": "alice2", "email": "ALICE@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/sign-up", "", gin.H{"username": "bob", "email": "bob", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/sign-up", "", gin.H{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/sign-in", "", gin.H{"email": "alice@example.com", "password": "nope123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, user := signIn(t, r, "alice@example.com", "secret1")
	assert.Equal(t, "alice", user.Username)

	w = doJSON(t, r, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		User         models.Profile `json:"user"`
		HasVoted     bool           `json:"has_voted"`
		HasSubmitted bool           `json:"has_submitted"`
	}](t, w)
	assert.Equal(t, user.ID, me.User.ID)
	assert.False(t, me.HasVoted)
	assert.False(t, me.HasSubmitted)

	w = doJSON(t, r, http.MethodPost, "/auth/sign-out", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContestHandlers_FullRound(t *testing.T) {
	r := newContestRouter(t)
	aliceTok, _ := signUpAndIn(t, r, "alice")
	bobTok, _ := signUpAndIn(t, r, "bob")
	adminTok, admin := signIn(t, r, "admin@example.com", "admin123")
	require.True(t, admin.IsAdmin)

	// Public reads need no token.
	w := doJSON(t, r, http.MethodGet, "/api/v1/contest/state", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[models.ContestState](t, w)
	assert.Equal(t, models.PhaseWriting, st.Phase)
	assert.Equal(t, "Home", st.Config.CurrentWord)

	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions", "", gin.H{"title": "T1", "content": "B1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions", aliceTok, gin.H{"title": "T1", "content": "B1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	aliceSub := decode[models.Submission](t, w)
	assert.Contains(t, w.Body.String(), `"votes":0`)

	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions", aliceTok, gin.H{"title": "T2", "content": "B2"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions", bobTok, gin.H{"title": "Bob", "content": "words"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Members cannot drive the contest.
	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/phase", bobTok, gin.H{"phase": "voting"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions/"+aliceSub.ID+"/vote", bobTok, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "voting not open")

	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/phase", adminTok, gin.H{"phase": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/phase/voting/toggle", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.ContestConfig](t, w).IsVotingActive)

	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions/"+aliceSub.ID+"/vote", bobTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[models.Submission](t, w).Votes())

	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions/"+aliceSub.ID+"/vote", bobTok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions/"+aliceSub.ID+"/vote", aliceTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/contest/submissions/missing/vote", aliceTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/voted", bobTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[map[string]bool](t, w)["voted"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/tally", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tally := decode[struct {
		Tally []models.TallyEntry `json:"tally"`
	}](t, w).Tally
	require.Len(t, tally, 2)
	assert.Equal(t, aliceSub.ID, tally[0].Submission.ID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/winner", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/winner/auto", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, aliceSub.ID, decode[models.Submission](t, w).ID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/winner?word=Home", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.Submission](t, w).IsWinner)

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[models.Dashboard](t, w)
	assert.Equal(t, 2, d.Submissions)
	assert.Equal(t, 1, d.Voters)
	assert.Equal(t, 3, d.Users)

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/rounds", adminTok, gin.H{"word": "Trust"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	round := decode[struct {
		Archive models.ArchiveEntry  `json:"archive"`
		Config  models.ContestConfig `json:"config"`
	}](t, w)
	assert.Equal(t, "Home", round.Archive.Word)
	assert.Equal(t, "alice", round.Archive.WinnerUsername)
	assert.Equal(t, 2, round.Archive.TotalSubmissions)
	assert.Equal(t, "Trust", round.Config.CurrentWord)
	assert.True(t, round.Config.IsWritingActive)

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/archives", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[struct {
		Count int `json:"count"`
	}](t, w).Count)

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/submissions?word=Home", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[struct {
		Count int `json:"count"`
	}](t, w).Count)

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/submissions/"+aliceSub.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/submissions/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHandlers_ExportAndReset(t *testing.T) {
	r := newContestRouter(t)
	aliceTok, _ := signUpAndIn(t, r, "alice")
	adminTok, _ := signIn(t, r, "admin@example.com", "admin123")

	w := doJSON(t, r, http.MethodPut, "/api/v1/admin/word", adminTok, gin.H{"word": "Courage"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Courage", decode[models.ContestConfig](t, w).CurrentWord)

	w = doJSON(t, r, http.MethodPatch, "/api/v1/admin/config", adminTok, gin.H{"challenge_month": "Spring 2025"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Spring 2025", decode[models.ContestConfig](t, w).ChallengeMonth)

	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/phase/writing", adminTok, gin.H{"active": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PhaseResults, decode[models.ContestConfig](t, w).Phase())

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/export", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotContains(t, w.Body.String(), "password_hash")
	bundle := decode[models.ExportBundle](t, w)
	assert.Len(t, bundle.Users, 2)

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/users", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/reset", adminTok, gin.H{"confirm": "yes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/reset", adminTok, gin.H{"confirm": "RESET"})
	require.Equal(t, http.StatusOK, w.Code)

	// Tokens of deleted users stop working.
	w = doJSON(t, r, http.MethodGet, "/api/v1/me", aliceTok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/contest/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cfg := decode[models.ContestConfig](t, w)
	assert.Equal(t, "Home", cfg.CurrentWord)
	assert.Equal(t, models.PhaseWriting, cfg.Phase())
}
