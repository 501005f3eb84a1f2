package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityService_Register(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "  alice ", "Alice@Example.COM", "s3cr3t!")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "s3cr3t!", u.PasswordHash)
	assert.NoError(t, verifyPassword(u.PasswordHash, "s3cr3t!"))

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)

	assert.Len(t, eventsOfType(t, svc, "user_registered"), 1)
}

func TestIdentityService_Register_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "username too short", username: "a", email: "a@example.com", password: "secret1"},
		{name: "username too long", username: string(make([]byte, 51)), email: "b@example.com", password: "secret1"},
		{name: "malformed email", username: "bob", email: "not-an-email", password: "secret1"},
		{name: "display name email", username: "bob", email: "Bob <bob@example.com>", password: "secret1"},
		{name: "short password", username: "bob", email: "bob@example.com", password: "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1, "only the seeded admin")
}

func TestIdentityService_Register_DuplicateEmailIgnoresCase(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice2", "ALICE@example.com", "secret2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(ctx, "impostor", "ADMIN@example.com", "secret2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestIdentityService_Authenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")

	u, err := svc.Authenticate(ctx, " ALICE@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthFailed)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestIdentityService_SeededAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	admin, err := svc.Authenticate(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "Admin", admin.Username)

	// A second bootstrap does not add another admin.
	require.NoError(t, svc.Bootstrap(context.Background()))
	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestIdentityService_GetUser_Absent(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.GetUser(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestIdentityService_ListUsers_RegistrationOrder(t *testing.T) {
	svc, _ := newTestService(t)
	mustRegister(t, svc, "alice")
	mustRegister(t, svc, "bob")

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Admin", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)
	assert.Equal(t, "bob", users[2].Username)
}

func TestIdentityService_Session(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")

	p, err := svc.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, svc.SetSession(ctx, &alice))
	p, err = svc.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, alice.ID, p.ID)
	assert.Equal(t, alice.Email, p.Email)

	require.NoError(t, svc.SetSession(ctx, nil))
	p, err = svc.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestIdentityService_Tokens(t *testing.T) {
	svc, clk := newTestService(t)
	alice := mustRegister(t, svc, "alice")

	token, err := svc.IssueToken(alice)
	require.NoError(t, err)

	id, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id)

	_, err = svc.ParseToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	clk.Advance(2 * time.Hour)
	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired token")
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	got, err := normalizeEmail("  Bob@Example.org ")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.org", got)

	for _, bad := range []string{"", "bob", "bob@", "@example.org", "Bob <bob@example.org>", "bob@example.org, eve@example.org"} {
		_, err = normalizeEmail(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}
