package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"writing_challenge/internal/models"
	"writing_challenge/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptDefaultCost = bcrypt.DefaultCost

// IdentityService handles accounts, credentials and the current-user session.
type IdentityService struct {
	*deps
}

func NewIdentityService(d *deps) *IdentityService {
	return &IdentityService{deps: d}
}

// Register creates a non-admin user. Emails are unique case-insensitively.
func (s *IdentityService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return models.User{}, validationErr("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return models.User{}, validationErr("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordBytes {
		return models.User{}, validationErr("password must be at most %d bytes", maxPasswordBytes)
	}

	// Hash outside the store lock.
	hash, err := s.hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock(),
	}
	err = s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		users, err := tx.Contest().Users(ctx)
		if err != nil {
			return err
		}
		if findByEmail(users, email) >= 0 {
			return ErrDuplicateEmail
		}
		if err := tx.Contest().SaveUsers(ctx, append(users, u)); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, models.EventUserRegistered, fmt.Sprintf("%s registered", u.Username), map[string]any{
			"user_id":  u.ID,
			"username": u.Username,
		})
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Authenticate verifies credentials. Unknown email and wrong password fail the same way.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		u     models.User
		found bool
	)
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		users, err := tx.Contest().Users(ctx)
		if err != nil {
			return err
		}
		if i := findByEmail(users, email); i >= 0 {
			u, found = users[i], true
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrAuthFailed
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return models.User{}, ErrAuthFailed
	}
	return u, nil
}

// GetUser returns the user with id, or nil if there is none.
func (s *IdentityService) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out *models.User
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		users, err := tx.Contest().Users(ctx)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].ID == id {
				u := users[i]
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ListUsers returns every account without credential hashes, in registration order.
func (s *IdentityService) ListUsers(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		users, err := tx.Contest().Users(ctx)
		if err != nil {
			return err
		}
		out = profiles(users)
		return nil
	})
	return out, err
}

// GetSession returns the persisted current user, if any.
func (s *IdentityService) GetSession(ctx context.Context) (*models.Profile, error) {
	var out *models.Profile
	err := s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		p, err := tx.Contest().Session(ctx)
		out = p
		return err
	})
	return out, err
}

// SetSession persists user as the current user; nil clears it.
func (s *IdentityService) SetSession(ctx context.Context, user *models.User) error {
	return s.atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		if user == nil {
			return tx.Contest().ClearSession(ctx)
		}
		return tx.Contest().SaveSession(ctx, user.Profile())
	})
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// IssueToken returns a signed bearer token for user.
func (s *IdentityService) IssueToken(user models.User) (string, error) {
	now := s.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: user.ID,
	})
	return token.SignedString([]byte(s.opts.SigningKey))
}

// ParseToken parses JWT and returns userID
func (s *IdentityService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.SigningKey), nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// emailCheck applies the rules gin uses for `binding:"email"`.
var emailCheck = validator.New()

// normalizeEmail lowercases a bare address and rejects anything else.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if err := emailCheck.Var(email, "required,email"); err != nil {
		return "", validationErr("invalid email %q", raw)
	}
	return email, nil
}

func findByEmail(users []models.User, email string) int {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return i
		}
	}
	return -1
}

func profiles(users []models.User) []models.Profile {
	out := make([]models.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out
}

// helper: hash password safely
func (d *deps) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.opts.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
