package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/olegsm/imagewall/internal/server/auth"
	"github.com/olegsm/imagewall/internal/server/models"
	"github.com/olegsm/imagewall/internal/server/repositories/users"
	"github.com/google/uuid"
)

// ChallengeVerifier checks an optional human-verification token supplied on
// login. Verification itself is an external collaborator; the service only
// consumes this boundary.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token string) error
}

// NoopChallengeVerifier accepts every challenge token, including the empty
// one. It is the default when no verifier backend is configured.
type NoopChallengeVerifier struct{}

func (NoopChallengeVerifier) Verify(ctx context.Context, token string) error {
	return nil
}

type UserService struct {
	repo          users.Repository
	challenge     ChallengeVerifier
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(repo users.Repository, challenge ChallengeVerifier, jwtSecret []byte, tokenValidity time.Duration) *UserService {
	if challenge == nil {
		challenge = NoopChallengeVerifier{}
	}
	return &UserService{
		repo:          repo,
		challenge:     challenge,
		jwtSecret:     jwtSecret,
		tokenValidity: tokenValidity,
	}
}

func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	salt, err := auth.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		UserName: username,
		Salt:     salt,
		Verifier: auth.MakeVerifier(password, salt),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the optional challenge token and the password, and issues a
// signed access token. Unknown users and bad passwords both surface as
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password, challengeToken string) (string, time.Duration, error) {

	if err := s.challenge.Verify(ctx, challengeToken); err != nil {
		return "", 0, common.ErrorUnauthorized
	}

	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", 0, common.ErrorUnauthorized
		}
		return "", 0, common.ErrorInternal
	}

	if !auth.CheckVerifier(user.Verifier, auth.MakeVerifier(password, user.Salt)) {
		return "", 0, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", 0, common.ErrorInternal
	}

	return token, s.tokenValidity, nil
}
