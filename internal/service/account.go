// Package service holds the application logic between the HTTP/CLI layers
// and storage: accounts and profiles, the progress log, and plan building.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/auth"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/repository"
)

// AccountService registers and authenticates users and stores their
// profile.
type AccountService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	hasher   auth.Hasher
	logger   *slog.Logger

	// dummyDigest is verified against when the username does not exist, so
	// an unknown user costs the same hashing work as a wrong password.
	dummyDigest string
}

// NewAccountService wires the service. hasher decides how passwords are
// digested (see auth.NewHasher).
func NewAccountService(users repository.UserRepository, profiles repository.ProfileRepository, hasher auth.Hasher, logger *slog.Logger) *AccountService {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		logger.Warn("could not prepare dummy password digest", slog.String("error", err.Error()))
	}
	return &AccountService{
		users:       users,
		profiles:    profiles,
		hasher:      hasher,
		logger:      logger,
		dummyDigest: dummy,
	}
}

// Register creates a user. A taken username yields apperror.DuplicateUsername
// from the storage layer; there is no lookup beforehand.
func (s *AccountService) Register(ctx context.Context, username, password, fullName string) (*model.User, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if len(fullName) > MaxFullNameLength {
		return nil, apperror.ValidationFailed("fullName",
			fmt.Sprintf("full name must be %d characters or less", MaxFullNameLength))
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{Username: username, PasswordDigest: digest, FullName: fullName}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			s.logger.Info("registration rejected, username taken", slog.String("username", username))
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", user.ID), slog.String("username", username))
	return user, nil
}

// Authenticate returns the user for a correct username and password. Unknown
// usernames and wrong passwords both return apperror.AuthFailed.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.hasher.Verify(s.dummyDigest, password)
			s.logger.Info("login failed", slog.String("username", username))
			return nil, apperror.AuthFailed()
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordDigest, password); err != nil {
		if !errors.Is(err, auth.ErrMismatch) {
			s.logger.Error("stored password digest unreadable",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()),
			)
		}
		s.logger.Info("login failed", slog.String("username", username))
		return nil, apperror.AuthFailed()
	}

	return user, nil
}

// GetUser returns the user with id.
func (s *AccountService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// SaveProfile stores p as the whole profile of userID, replacing any earlier
// one. Enumerated spellings are canonicalized but not range-checked; callers
// taking user input run ValidateProfile first. The only failure for a known
// user is a storage error.
func (s *AccountService) SaveProfile(ctx context.Context, userID int64, p model.Profile) (*model.Profile, error) {
	p.UserID = userID
	CanonicalizeProfile(&p)

	if err := s.profiles.Upsert(ctx, &p); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to save profile",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving profile: %w", err)
	}

	s.logger.Info("profile saved", slog.Int64("user_id", userID))
	return &p, nil
}

// GetProfile returns the user's profile. found is false when the user has not
// filled one in yet, which callers should treat as "show the profile form".
func (s *AccountService) GetProfile(ctx context.Context, userID int64) (*model.Profile, bool, error) {
	p, found, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("getting profile: %w", err)
	}
	return p, found, nil
}
