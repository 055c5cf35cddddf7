package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/service"
)

// Planner builds plans (see service.PlannerService).
type Planner interface {
	Plan(ctx context.Context, userID int64) (*service.Plan, error)
	Compute(p model.Profile) service.Plan
}

// PlanHandler serves the logged-in plan and the anonymous calculator.
type PlanHandler struct {
	planner Planner
	logger  *slog.Logger
}

func NewPlanHandler(planner Planner, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{planner: planner, logger: logger}
}

// HandlePlan returns the plan for the stored profile; 404 until the profile
// has been saved.
func (h *PlanHandler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	plan, err := h.planner.Plan(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, plan)
}

// HandleMetrics computes a plan from query parameters without an account:
//
//	GET /api/metrics?age=30&sex=Male&height_cm=175&weight_kg=70
//	    &activity_level=Sedentary&goal=Lose+weight&diet_pref=Vegan
func (h *PlanHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	p, err := profileFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := service.ValidateProfile(&p); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.planner.Compute(p))
}

func profileFromQuery(q url.Values) (model.Profile, error) {
	age, err := strconv.Atoi(q.Get("age"))
	if err != nil {
		return model.Profile{}, apperror.ValidationFailed("age", "age must be a whole number")
	}
	height, err := parseFloatParam(q, "height_cm")
	if err != nil {
		return model.Profile{}, err
	}
	weight, err := parseFloatParam(q, "weight_kg")
	if err != nil {
		return model.Profile{}, err
	}
	return model.Profile{
		Age:            age,
		Sex:            q.Get("sex"),
		HeightCm:       height,
		WeightKg:       weight,
		ActivityLevel:  q.Get("activity_level"),
		Goal:           q.Get("goal"),
		DietPreference: q.Get("diet_pref"),
	}, nil
}

func parseFloatParam(q url.Values, name string) (float64, error) {
	v, err := strconv.ParseFloat(q.Get(name), 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be a number", name))
	}
	return v, nil
}
