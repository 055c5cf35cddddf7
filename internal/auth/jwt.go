package auth

// LOGIN FLOW:
//  1. POST /api/auth/login with username and password
//  2. AuthService verifies the bcrypt digest and asks TokenService for a token
//  3. The handler returns the token in the body and in an HttpOnly cookie
//  4. On every /api call after that, RequireAuth validates the token and puts
//     the user ID on the request context; handlers never see the token
//
// WHY A SIGNED TOKEN INSTEAD OF A SESSIONS TABLE?
// The token carries everything needed to authenticate a request: who (sub),
// until when (exp) and a unique ID (jti). The HMAC signature means the
// server can trust those claims without a database round trip, so the
// sqlite file only ever holds users, profiles and progress.
//
// The cost is that a token cannot be revoked before it expires. Logging out
// clears the cookie, and a short lifetime bounds how long a copied token
// stays useful.
//
// TOKEN LAYOUT (three base64url parts joined by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	{"alg":"HS256","typ":"JWT"} . {"sub":"42","iss":"health-planner",...} . HMAC
import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const issuer = "health-planner"

// DefaultSessionTTL is how long a login token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// TokenService signs and validates HS256 session tokens. The subject claim
// carries the user ID in decimal; every token also gets a unique jti.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService requires a secret of at least 16 bytes.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), ttl: DefaultSessionTTL}, nil
}

// TTL reports the lifetime of tokens issued by Generate.
func (s *TokenService) TTL() time.Duration { return s.ttl }

type claims struct {
	jwt.RegisteredClaims
}

// Generate issues a session token for userID with the default lifetime.
func (s *TokenService) Generate(userID int64) (string, error) {
	return s.GenerateWithDuration(userID, s.ttl)
}

// GenerateWithDuration issues a token that expires after d. A negative d
// gives an already-expired token, which tests use.
func (s *TokenService) GenerateWithDuration(userID int64, d time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm, issuer and expiry and returns the
// user ID from the subject.
//
// PINNING THE ALGORITHM:
// The header of an incoming token names its own signing algorithm, and it
// is attacker controlled. If the parser trusted it, a token with
// "alg":"none" (or an RSA public key reused as an HMAC secret) could slip
// through. jwt.WithValidMethods restricts parsing to HS256, and the key func
// double-checks the method type before handing over the secret.
func (s *TokenService) Validate(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errors.New("auth: token expired")
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, errors.New("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("auth: bad token subject %q", c.Subject)
	}
	return userID, nil
}
