package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/repository"
)

// ProgressInput is one day's log as submitted by the user.
type ProgressInput struct {
	Date             time.Time
	WeightKg         *float64
	CaloriesConsumed *int
	Completed        bool
	Notes            string
}

// ProgressService appends to and replays a user's daily log.
type ProgressService struct {
	repo   repository.ProgressRepository
	logger *slog.Logger
}

func NewProgressService(repo repository.ProgressRepository, logger *slog.Logger) *ProgressService {
	return &ProgressService{repo: repo, logger: logger}
}

// Append stores a new entry. Entries for a day that already has one, or for
// a day before the latest entry, are accepted and kept as-is.
func (s *ProgressService) Append(ctx context.Context, userID int64, in ProgressInput) (*model.ProgressEntry, error) {
	if in.Date.IsZero() {
		return nil, apperror.ValidationFailed("date", "date is required")
	}
	if in.WeightKg != nil && *in.WeightKg <= 0 {
		return nil, apperror.ValidationFailed("weightKg", "weight must be positive")
	}
	if in.CaloriesConsumed != nil && *in.CaloriesConsumed < 0 {
		return nil, apperror.ValidationFailed("caloriesConsumed", "calories consumed cannot be negative")
	}
	if len(in.Notes) > MaxNotesLength {
		return nil, apperror.ValidationFailed("notes",
			fmt.Sprintf("notes must be %d characters or less", MaxNotesLength))
	}

	entry := &model.ProgressEntry{
		UserID:           userID,
		Date:             model.Day(in.Date),
		WeightKg:         in.WeightKg,
		CaloriesConsumed: in.CaloriesConsumed,
		Completed:        in.Completed,
		Notes:            in.Notes,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append progress",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("appending progress: %w", err)
	}

	s.logger.Debug("progress appended",
		slog.Int64("user_id", userID),
		slog.String("date", entry.Date.Format(model.DateLayout)),
	)
	return entry, nil
}

// History returns all of the user's entries in date order. No entries is an
// empty slice, not an error.
func (s *ProgressService) History(ctx context.Context, userID int64) ([]model.ProgressEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	if entries == nil {
		entries = []model.ProgressEntry{}
	}
	return entries, nil
}
