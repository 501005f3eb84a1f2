package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"
	"writing_challenge/internal/repository/db"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "admin123"
)

// testClock is a settable clock shared by every sub-service of one test Service.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// newTestService returns a bootstrapped Service over a fresh SQLite file.
// The round starts on "Home" in March 2025 with writing open.
func newTestService(t *testing.T) (*Service, *testClock) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.InitDB(ctx, filepath.Join(t.TempDir(), "challenge.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	svc := NewService(repository.NewRepository(conn), Options{
		SigningKey:  "test-signing-key",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
		DefaultWord: "Home",
		Admin: AdminSeed{
			Username: "Admin",
			Email:    testAdminEmail,
			Password: testAdminPassword,
		},
	})
	clk := &testClock{t: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	svc.deps.now = clk.Now

	require.NoError(t, svc.Bootstrap(ctx))
	return svc, clk
}

func mustRegister(t *testing.T, svc *Service, username string) models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), username, username+"@example.com", "secret1")
	require.NoError(t, err)
	return u
}

func mustSubmit(t *testing.T, svc *Service, u models.User, title string) models.Submission {
	t.Helper()
	sub, err := svc.Submissions.Create(context.Background(), u.ID, u.Username, title, "body of "+title)
	require.NoError(t, err)
	return sub
}

func mustPhase(t *testing.T, svc *Service, p models.Phase) {
	t.Helper()
	_, err := svc.Config.SetPhase(context.Background(), p)
	require.NoError(t, err)
}

func eventsOfType(t *testing.T, svc *Service, typ string) []models.ContestEvent {
	t.Helper()
	evs, err := svc.EventLog.List(context.Background(), LogFilter{Type: typ})
	require.NoError(t, err)
	return evs
}
