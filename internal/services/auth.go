package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/songbook-dev/songbook/internal/auth"
	"github.com/songbook-dev/songbook/internal/models"
	"github.com/songbook-dev/songbook/internal/repository"
)

type LoginResult struct {
	Name         string
	Email        string
	UserID       string
	SessionToken string
}

// AuthService exchanges a verified external identity for a session token,
// creating the local user the first time a subject is seen.
type AuthService struct {
	repo     repository.Repository
	verifier auth.IdentityVerifier
	codec    *auth.TokenCodec
}

func NewAuthService(repo repository.Repository, verifier auth.IdentityVerifier, codec *auth.TokenCodec) *AuthService {
	return &AuthService{repo: repo, verifier: verifier, codec: codec}
}

func (s *AuthService) Login(ctx context.Context, externalToken string) (*LoginResult, error) {
	if strings.TrimSpace(externalToken) == "" {
		return nil, newValidationError(MsgTokenRequired)
	}

	identity, err := s.verifier.Verify(ctx, externalToken)

	// any verifier failure is an authentication failure, never a 500
	if err != nil && !errors.Is(err, auth.ErrIdentityRejected) {
		err = fmt.Errorf("%w: %v", auth.ErrIdentityRejected, err)
	}

	if err != nil {
		return nil, err
	}

	user, err := s.findOrCreateUser(ctx, identity.Subject)

	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(user.ID)

	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &LoginResult{
		Name:         identity.Name,
		Email:        identity.Email,
		UserID:       user.ID,
		SessionToken: token,
	}, nil
}

func (s *AuthService) findOrCreateUser(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.repo.FindUserByExternalID(ctx, subject)

	if err == nil {
		return user, nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	user = &models.User{ExternalLoginID: subject}
	err = s.repo.CreateUser(ctx, user)

	// a concurrent first login for the same subject won the insert
	if errors.Is(err, repository.ErrDuplicate) {
		log.Debug().Str("external_login_id", subject).Msg("User created concurrently, reusing existing record")
		return s.repo.FindUserByExternalID(ctx, subject)
	}

	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("Created user on first login")

	return user, nil
}
