package auth

import (
	"context"
	"log/slog"
	"time"

	"campaign-server/internal/shared/errors"

	"github.com/google/uuid"
)

type Service struct {
	repo     *Repository
	provider Provider
	logger   *slog.Logger
}

func NewService(repo *Repository, provider Provider, logger *slog.Logger) *Service {
	logger.Debug("Initializing auth service", "provider", provider.Name())

	return &Service{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}
}

// BeginLogin issues a CSRF state token and returns the provider URL the
// client should be redirected to.
func (s *Service) BeginLogin(userAgent string) (string, error) {
	state, err := GenerateLoginState(userAgent)
	if err != nil {
		return "", errors.WrapInternal("failed to initialize login flow", err)
	}

	return s.provider.LoginURL(state), nil
}

// CompleteLogin validates the callback, resolves the provider identity to a
// local user (creating one on first login) and returns a signed session token.
func (s *Service) CompleteLogin(ctx context.Context, state, code, userAgent string) (string, *User, error) {
	if err := ValidateLoginState(state, userAgent); err != nil {
		return "", nil, errors.Unauthorized("invalid request state")
	}

	identity, err := s.provider.Authenticate(ctx, code)
	if err != nil {
		return "", nil, errors.Unauthorized("authentication failed")
	}

	user, err := s.findOrCreateUser(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	if err := s.repo.RecordLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to record login time", "error", err, "user_id", user.ID)
	}

	token, err := GenerateJWT(user)
	if err != nil {
		return "", nil, errors.WrapInternal("failed to create session token", err)
	}

	s.logger.Info("Login completed",
		"provider", s.provider.Name(),
		"user_id", user.ID,
		"email", user.Email)

	return token, user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) findOrCreateUser(ctx context.Context, identity *Identity) (*User, error) {
	user, err := s.repo.FindBySubject(ctx, s.provider.Name(), identity.Subject)
	if err == nil {
		return user, nil
	}
	if errors.GetType(err) != errors.ErrorTypeNotFound {
		return nil, err
	}

	user = &User{
		ID:        uuid.NewString(),
		Provider:  s.provider.Name(),
		Subject:   identity.Subject,
		Email:     identity.Email,
		Name:      identity.Name,
		CreatedAt: time.Now().UTC(),
	}
	if identity.AvatarURL != "" {
		user.AvatarURL = &identity.AvatarURL
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Created user on first login",
		"user_id", user.ID,
		"provider", user.Provider)

	return user, nil
}
