// Package services contains the application services sitting between the
// API surface and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dpavlenko/liftlog/internal/common"
	"github.com/dpavlenko/liftlog/internal/server/auth"
	"github.com/dpavlenko/liftlog/internal/server/config"
	"github.com/dpavlenko/liftlog/internal/server/models"
	"github.com/dpavlenko/liftlog/internal/server/repositories/users"
)

// AuthResult is the payload of a successful signup or login: a bearer token
// and the public identity fields. The password hash never leaves the service.
type AuthResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	repo          users.Repository
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new identity and issues its first token. Duplicate
// emails fail with common.ErrorDuplicateEmail; the uniqueness check is the
// database constraint, so concurrent registrations cannot both win.
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResult, error) {

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is required", common.ErrorInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorInvalidInput, err.Error())
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{Token: token, User: user}, nil
}

// dummyHash keeps login latency flat for unknown emails: the bcrypt compare
// runs either way, so callers cannot probe which emails are registered.
var dummyHash = func() string {
	h, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		panic(err)
	}
	return h
}()

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the identical common.ErrorInvalidCredentials value.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(password, dummyHash)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{Token: token, User: user}, nil
}
