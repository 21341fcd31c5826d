package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect/internal/infrastructure/memory"
	"github.com/devconnect/devconnect/pkg/helpers"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newUserService() *UserService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewUserService(memory.NewUserRepository(), jwt, nil, discardLogger(), false)
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	token, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "s3cret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.JWT.Verify(token)
	require.NoError(t, err)

	u, err := svc.Get(ctx, claims.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Contains(t, u.Avatar, "gravatar.com/avatar/")
	assert.NotEqual(t, "s3cret123", u.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ada", "ada@example.com", "different1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "ada@example.com", "s3cret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret123")
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "ada@example.com", "wrongpass")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "s3cret123")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknownEmail)
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc := newUserService()

	_, err := svc.Get(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
