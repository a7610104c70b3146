package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegsm/imagewall/internal/common"
	authpkg "github.com/olegsm/imagewall/internal/server/auth"
	"github.com/olegsm/imagewall/internal/server/models"
	"github.com/olegsm/imagewall/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsersRepo struct {
	users.Repository

	byLogin map[string]*models.User
	created []*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if u, ok := f.byLogin[login]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type rejectingChallenge struct{}

func (rejectingChallenge) Verify(ctx context.Context, token string) error {
	return errors.New("challenge rejected")
}

func repoWithUser(t *testing.T, username, password string) *fakeUsersRepo {
	t.Helper()

	salt, err := authpkg.NewSalt()
	require.NoError(t, err)

	return &fakeUsersRepo{byLogin: map[string]*models.User{
		username: {
			ID:       "user-1",
			UserName: username,
			Salt:     salt,
			Verifier: authpkg.MakeVerifier(password, salt),
		},
	}}
}

func TestLogin_IssuesValidToken(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	svc := NewUserService(repoWithUser(t, "alice", "pw"), nil, secret, time.Hour)

	token, validity, err := svc.Login(context.Background(), "alice", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, validity)

	userID, err := authpkg.GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := NewUserService(repoWithUser(t, "alice", "pw"), nil, []byte("secret"), time.Hour)

	_, _, err := svc.Login(context.Background(), "alice", "wrong", "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeUsersRepo{}, nil, []byte("secret"), time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody", "pw", "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_ChallengeRejected(t *testing.T) {
	t.Parallel()

	svc := NewUserService(repoWithUser(t, "alice", "pw"), rejectingChallenge{}, []byte("secret"), time.Hour)

	_, _, err := svc.Login(context.Background(), "alice", "pw", "bad-challenge")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRegister_DerivesVerifier(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{}
	svc := NewUserService(repo, nil, []byte("secret"), time.Hour)

	user, err := svc.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.UserName)
	assert.True(t, authpkg.CheckVerifier(user.Verifier, authpkg.MakeVerifier("pw", user.Salt)))
}
