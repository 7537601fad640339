// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and session tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/cryptox"
	"github.com/dmitrijs2005/weekplanner/internal/logging"
	"github.com/dmitrijs2005/weekplanner/internal/server/auth"
	"github.com/dmitrijs2005/weekplanner/internal/server/config"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/repomanager"
)

// Session is what a successful login hands to the web layer.
type Session struct {
	Identity models.Identity
	Token    string
}

// UserService provides authentication-related operations:
// - Register: create users with a salted password hash
// - Login: verify credentials and mint a session token
// - Authenticate: turn a session token back into an identity
type UserService struct {
	repomanager             repomanager.RepositoryManager
	logger                  logging.Logger
	jwtSecret               []byte
	sessionValidityDuration time.Duration
	now                     func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		repomanager:             m,
		logger:                  l.With("module", "user_service"),
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
		now:                     time.Now,
	}
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. Empty email or password fails with
// common.ErrorValidation, a taken email with common.ErrorDuplicateEmail.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	switch {
	case email == "":
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	case !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: email looks invalid", common.ErrorValidation)
	case strings.TrimSpace(password) == "":
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}

	repo := s.repomanager.Users()

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	salt := cryptox.NewSalt()
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	user := &models.User{
		Email:        email,
		Name:         name,
		Salt:         salt,
		PasswordHash: cryptox.HashPassword(pw, salt),
		CreatedAt:    s.now().UTC(),
	}

	u, err := repo.Create(ctx, user)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		s.logger.Error(ctx, "user create failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and returns a new session. Unknown emails
// and wrong passwords both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repomanager.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	if !cryptox.VerifyPassword(pw, user.Salt, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	id := models.Identity{UserID: user.ID, Name: user.Name}
	token, err := auth.GenerateToken(id, s.jwtSecret, s.sessionValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &Session{Identity: id, Token: token}, nil
}

// Authenticate resolves a session token into the caller's identity.
func (s *UserService) Authenticate(token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, common.ErrorUnauthorized
	}
	return auth.ParseToken(token, s.jwtSecret)
}

// SessionValidity is how long a new session lasts.
func (s *UserService) SessionValidity() time.Duration {
	return s.sessionValidityDuration
}

// Lookup returns the user registered under email.
func (s *UserService) Lookup(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users().GetUserByEmail(ctx, NormalizeEmail(email))
}
