package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/auth"
)

type failingIssuer struct{}

func (failingIssuer) Generate(int64) (string, error) { return "", errors.New("no key") }

func TestLogin_IssuesValidToken(t *testing.T) {
	accounts, _ := newAccountService(t, auth.SHA256Hasher{})
	user, err := accounts.Register(context.Background(), "ivy", "pw", "")
	require.NoError(t, err)
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)
	svc := NewAuthService(accounts, tokens, discardLogger())

	res, err := svc.Login(context.Background(), "ivy", "pw")
	require.NoError(t, err)

	assert.Equal(t, user.ID, res.User.ID)
	id, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestLogin_BadCredentials(t *testing.T) {
	accounts, _ := newAccountService(t, auth.SHA256Hasher{})
	tokens, _ := auth.NewTokenService("test-secret-at-least-16-chars!!")
	svc := NewAuthService(accounts, tokens, discardLogger())

	_, err := svc.Login(context.Background(), "ghost", "pw")

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_TokenFailure(t *testing.T) {
	accounts, _ := newAccountService(t, auth.SHA256Hasher{})
	_, err := accounts.Register(context.Background(), "jo", "pw", "")
	require.NoError(t, err)
	svc := NewAuthService(accounts, failingIssuer{}, discardLogger())

	_, err = svc.Login(context.Background(), "jo", "pw")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrUnauthorized)
}
