package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/service"
)

// Progress is the daily log (see service.ProgressService).
type Progress interface {
	Append(ctx context.Context, userID int64, in service.ProgressInput) (*model.ProgressEntry, error)
	History(ctx context.Context, userID int64) ([]model.ProgressEntry, error)
}

// ProgressHandler serves /api/progress.
type ProgressHandler struct {
	progress Progress
	now      func() time.Time
	logger   *slog.Logger
}

func NewProgressHandler(progress Progress, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{progress: progress, now: time.Now, logger: logger}
}

type progressRequest struct {
	Date             string   `json:"date"`
	WeightKg         *float64 `json:"weightKg"`
	CaloriesConsumed *int     `json:"caloriesConsumed"`
	Completed        bool     `json:"completed"`
	Notes            string   `json:"notes"`
}

// progressEntry is model.ProgressEntry with the date as YYYY-MM-DD.
type progressEntry struct {
	ID               int64     `json:"id"`
	Date             string    `json:"date"`
	WeightKg         *float64  `json:"weightKg"`
	CaloriesConsumed *int      `json:"caloriesConsumed"`
	Completed        bool      `json:"completed"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toProgressEntry(e model.ProgressEntry) progressEntry {
	return progressEntry{
		ID:               e.ID,
		Date:             e.Date.Format(model.DateLayout),
		WeightKg:         e.WeightKg,
		CaloriesConsumed: e.CaloriesConsumed,
		Completed:        e.Completed,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
	}
}

// HandleList returns the user's entries oldest first; [] when there are none.
func (h *ProgressHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	entries, err := h.progress.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load progress",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, h.logger, err)
		return
	}

	out := make([]progressEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toProgressEntry(e))
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

// HandleAppend adds an entry. An omitted date means today.
func (h *ProgressHandler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req progressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	date := h.now()
	if req.Date != "" {
		d, err := time.Parse(model.DateLayout, req.Date)
		if err != nil {
			writeError(w, h.logger, apperror.ValidationFailed("date", "date must be YYYY-MM-DD"))
			return
		}
		date = d
	}

	entry, err := h.progress.Append(r.Context(), userID, service.ProgressInput{
		Date:             date,
		WeightKg:         req.WeightKg,
		CaloriesConsumed: req.CaloriesConsumed,
		Completed:        req.Completed,
		Notes:            req.Notes,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toProgressEntry(*entry))
}
