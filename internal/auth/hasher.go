package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMismatch is returned by a Hasher when the password does not match the
// stored digest.
var ErrMismatch = errors.New("auth: password does not match")

// Hasher turns plaintext passwords into stored digests and checks them.
// Verify returns nil on a match, an error wrapping ErrMismatch on a wrong
// password, and any other error for a digest it cannot read.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(digest, plaintext string) error
}

var (
	_ Hasher = SHA256Hasher{}
	_ Hasher = (*PasswordService)(nil)
)

// Scheme names accepted by NewHasher.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// NewHasher returns the Hasher for scheme.
func NewHasher(scheme string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case SchemeSHA256, "":
		return SHA256Hasher{}, nil
	case SchemeBcrypt:
		return NewPasswordService(), nil
	default:
		return nil, fmt.Errorf("auth: unknown password scheme %q", scheme)
	}
}

// SHA256Hasher stores a single unsalted SHA-256 of the password, hex-encoded.
// It is deterministic: equal passwords give equal digests. Existing
// databases written with this scheme keep working; use PasswordService for
// new deployments that want a slow, salted hash.
type SHA256Hasher struct{}

// Hash returns the lowercase hex SHA-256 of plaintext.
func (SHA256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Verify compares in constant time.
func (SHA256Hasher) Verify(digest, plaintext string) error {
	want, err := hex.DecodeString(digest)
	if err != nil || len(want) != sha256.Size {
		return fmt.Errorf("auth: malformed sha256 digest")
	}
	got := sha256.Sum256([]byte(plaintext))
	if !hmac.Equal(got[:], want) {
		return ErrMismatch
	}
	return nil
}
