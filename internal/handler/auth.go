package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/auth"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/service"
)

// Accounts is the account side of the API (see service.AccountService).
type Accounts interface {
	Register(ctx context.Context, username, password, fullName string) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	SaveProfile(ctx context.Context, userID int64, p model.Profile) (*model.Profile, error)
	GetProfile(ctx context.Context, userID int64) (*model.Profile, bool, error)
}

// Sessions logs users in (see service.AuthService).
type Sessions interface {
	Login(ctx context.Context, username, password string) (*service.AuthResult, error)
}

// AuthHandler serves registration, login, logout and /api/me.
type AuthHandler struct {
	accounts   Accounts
	sessions   Sessions
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthHandler(accounts Accounts, sessions Sessions, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// HandleRegister creates an account. 201 on success, 409 if the username is
// taken.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password, req.FullName)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, user)
}

// HandleLogin checks credentials, sets the HttpOnly session cookie and also
// returns the token for clients that send it as a Bearer header.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, h.logger, http.StatusOK, loginResponse{User: res.User, Token: res.Token})
}

// HandleLogout clears the session cookie. Tokens are stateless, so a copied
// token stays valid until it expires.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the logged-in user. Must run behind auth.RequireAuth.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.accounts.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.Warn("HandleMe: user lookup failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, user)
}

// requireUserID pulls the user ID set by auth.RequireAuth, writing a 401 if
// it is missing.
func requireUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, logger, apperror.Unauthorized("valid authentication required"))
	}
	return userID, ok
}
