// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Username is unique and case-sensitive ("Ana" and "ana" are different
// accounts). The UNIQUE constraint on users.username is the only place that
// rule is enforced.
//
// PasswordDigest holds the output of the configured auth.Hasher, never the
// plaintext. It is hidden from JSON so a User can be returned from the API
// as-is.
type User struct {
	ID             int64     `json:"id"        db:"id"`
	Username       string    `json:"username"  db:"username"`
	PasswordDigest string    `json:"-"         db:"password_digest"`
	FullName       string    `json:"fullName"  db:"full_name"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
