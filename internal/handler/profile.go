package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/service"
)

// ProfileHandler reads and replaces the logged-in user's profile.
type ProfileHandler struct {
	accounts Accounts
	logger   *slog.Logger
}

func NewProfileHandler(accounts Accounts, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, logger: logger}
}

type profileRequest struct {
	Age            int     `json:"age"`
	Sex            string  `json:"sex"`
	HeightCm       float64 `json:"heightCm"`
	WeightKg       float64 `json:"weightKg"`
	ActivityLevel  string  `json:"activityLevel"`
	Goal           string  `json:"goal"`
	DietPreference string  `json:"dietPreference"`
}

func (p profileRequest) toModel() model.Profile {
	return model.Profile{
		Age:            p.Age,
		Sex:            p.Sex,
		HeightCm:       p.HeightCm,
		WeightKg:       p.WeightKg,
		ActivityLevel:  p.ActivityLevel,
		Goal:           p.Goal,
		DietPreference: p.DietPreference,
	}
}

// profileResponse reports Complete=false and a null profile for a user who
// has not filled the form in yet. That is a normal state, not a 404.
type profileResponse struct {
	Profile  *model.Profile `json:"profile"`
	Complete bool           `json:"complete"`
}

// HandleGet returns the profile, or {"profile": null, "complete": false}.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	p, found, err := h.accounts.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load profile",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, profileResponse{Profile: p, Complete: found})
}

// HandlePut checks the form bounds, then stores the whole profile.
func (h *ProfileHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p := req.toModel()
	if err := service.ValidateProfile(&p); err != nil {
		writeError(w, h.logger, err)
		return
	}

	saved, err := h.accounts.SaveProfile(r.Context(), userID, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, profileResponse{Profile: saved, Complete: true})
}
