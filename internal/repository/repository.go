// Package repository defines the storage contracts for accounts, profiles and
// progress logs. Implementations live in subpackages (see repository/sqlite).
package repository

import (
	"context"

	"github.com/sakif/health-planner/internal/model"
)

// UserRepository stores user identities.
//
// Create must rely on the store's own uniqueness constraint for usernames
// and report a violation as apperror.DuplicateUsername. Lookups that find
// nothing return an apperror.ErrNotFound error.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// ProfileRepository stores at most one profile per user.
type ProfileRepository interface {
	// Upsert replaces the whole profile for profile.UserID. An unknown
	// user is an apperror.ErrNotFound error.
	Upsert(ctx context.Context, profile *model.Profile) error
	// Get reports found=false, with a nil error, when the user has no profile.
	Get(ctx context.Context, userID int64) (profile *model.Profile, found bool, err error)
}

// ProgressRepository is an append-only log of daily entries.
type ProgressRepository interface {
	Append(ctx context.Context, entry *model.ProgressEntry) error
	// ListByUser returns entries ordered by date, then insertion order.
	ListByUser(ctx context.Context, userID int64) ([]model.ProgressEntry, error)
}
