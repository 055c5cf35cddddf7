package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/health-planner/internal/model"
)

// Authenticator checks credentials. *AccountService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// TokenIssuer signs session tokens. *auth.TokenService implements it.
type TokenIssuer interface {
	Generate(userID int64) (string, error)
}

// AuthService turns a successful login into a session token.
type AuthService struct {
	accounts Authenticator
	tokens   TokenIssuer
	logger   *slog.Logger
}

func NewAuthService(accounts Authenticator, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, logger: logger}
}

// AuthResult is returned after a successful login.
type AuthResult struct {
	User  *model.User
	Token string
}

// Login authenticates the user and issues a token. Failed credentials come
// back unchanged from the Authenticator (apperror.AuthFailed).
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return &AuthResult{User: user, Token: token}, nil
}
