package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"writing_challenge/internal/models"
	"writing_challenge/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockIdentity struct {
	users    map[string]models.User
	parseID  string
	parseErr error
	getErr   error

	lastParseToken string
}

func (m *mockIdentity) Register(ctx context.Context, username, email, password string) (models.User, error) {
	return models.User{}, nil
}
func (m *mockIdentity) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	return models.User{}, service.ErrAuthFailed
}
func (m *mockIdentity) GetUser(ctx context.Context, id string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
func (m *mockIdentity) ListUsers(ctx context.Context) ([]models.Profile, error) { return nil, nil }
func (m *mockIdentity) GetSession(ctx context.Context) (*models.Profile, error) { return nil, nil }
func (m *mockIdentity) SetSession(ctx context.Context, user *models.User) error { return nil }
func (m *mockIdentity) IssueToken(user models.User) (string, error)             { return "tok", nil }
func (m *mockIdentity) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockMonitoring struct {
	mu    sync.Mutex
	state models.ContestState
	err   error
	// failAfter makes every call after the first n fail with err; 0 means err applies always.
	failAfter int
	calls     int
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.ContestState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil && m.calls > m.failAfter {
		return models.ContestState{}, m.err
	}
	return m.state, nil
}

func (m *mockMonitoring) setState(st models.ContestState) {
	m.mu.Lock()
	m.state = st
	m.mu.Unlock()
}

type mockEventLog struct {
	resp      []models.ContestEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ContestEvent, error) {
	m.lastFrom, m.lastTo, m.lastType, m.lastLimit = f.From, f.To, f.Type, f.Limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// adminIdentity accepts any bearer token as the given admin user.
func adminIdentity() *mockIdentity {
	return &mockIdentity{
		parseID: "admin-1",
		users: map[string]models.User{
			"admin-1": {ID: "admin-1", Username: "Admin", IsAdmin: true},
		},
	}
}
