// Package auth handles password digests, session tokens and the HTTP
// middleware that turns a token into a user ID on the request context.
//
// WHY BCRYPT FOR STORED PASSWORDS?
// A planner account holds a person's weight history, so the users table is
// worth protecting even though nothing in it is payment data. A general
// purpose hash (SHA-256 and friends) is built to be fast, which is exactly
// what an attacker with a leaked database wants: billions of guesses per
// second on a GPU. bcrypt is deliberately slow and salts every digest:
//   - Two users who pick "password1" still get different digests
//   - The salt and cost live inside the digest string, so the schema needs
//     a single password_digest column
//   - Raising the cost later only affects new digests; old ones still verify
//
// A stored digest looks like:
//
//	$2a$12$<22-char salt><31-char hash>
//	    ^^
//	    cost: 2^12 rounds of the key schedule
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Each +1 doubles hashing time.
//
// PICKING A COST:
// Aim for a hash that takes a couple of hundred milliseconds on the machine
// that serves logins. Users log in once a day at most, so they never notice;
// a bulk guesser pays that price on every single attempt.
const defaultCost = 12

// maxBcryptLen is the input limit of bcrypt; longer passwords are rejected
// rather than silently truncated.
const maxBcryptLen = 72

// PasswordService is the bcrypt Hasher.
type PasswordService struct {
	cost int
}

// NewPasswordService returns a bcrypt Hasher with the production cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest lets other packages' tests use a low cost
// (bcrypt.MinCost) so they do not spend seconds hashing.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash returns a salted bcrypt digest of plaintext.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxBcryptLen {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", maxBcryptLen)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks plaintext against a bcrypt digest. A wrong password is
// reported as ErrMismatch; anything else means the digest itself is broken.
//
// CONSTANT-TIME COMPARISON:
// bcrypt.CompareHashAndPassword re-derives the hash and compares it in
// constant time, so response latency tells a caller nothing about how many
// leading bytes of a guess were right.
func (p *PasswordService) Verify(digest, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
