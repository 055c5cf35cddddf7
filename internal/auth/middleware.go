package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey keeps the user ID out of reach of other packages.
//
// CONTEXT KEYS:
// context.WithValue compares keys with ==, including their type. A bare
// string key "userID" would collide with any other package that picked the
// same string. An unexported named type cannot be constructed outside this
// package, so only WithUserID and UserIDFromContext can touch the value.
type contextKey string

const userIDKey contextKey = "userID"

// CookieName is the session cookie set on login.
const CookieName = "token"

// RequireAuth rejects requests without a valid session token with 401.
// The token is read from the "token" cookie, or from an
// "Authorization: Bearer" header for API clients.
//
// HOW THE WRAPPING WORKS:
// A middleware takes the next http.Handler and returns a new one that runs
// some code around it:
//
//	func Middleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // before: inspect or reject the request
//	        next.ServeHTTP(w, r)
//	        // after: the response has been written
//	    })
//	}
//
// RequireAuth only has a "before" half. When the token checks out it calls
// next with a request whose context carries the user ID; otherwise it writes
// the 401 itself and next never runs. Mounted on a chi route group, this
// guards profile, plan and progress while the calculator stays public.
//
// COOKIE OR HEADER:
// Browsers get the token in an HttpOnly cookie, which page scripts cannot
// read, so an injected script cannot steal it. API clients send the
// same token as a Bearer header. The header wins when both are present.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

func extractUserID(r *http.Request, tokens *TokenService) (int64, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || raw == "" {
			return 0, errors.New("auth: malformed Authorization header")
		}
		return tokens.Validate(raw)
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, err
	}
	return tokens.Validate(cookie.Value)
}
