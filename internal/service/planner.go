package service

import (
	"context"
	"strconv"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/metrics"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/recommend"
)

// Plan is everything shown on the dashboard for one profile.
type Plan struct {
	Profile   model.Profile              `json:"profile"`
	Summary   metrics.Summary            `json:"summary"`
	Meals     []recommend.MealSuggestion `json:"meals"`
	Exercises recommend.ExercisePlan     `json:"exercises"`
	Foods     []model.FoodItem           `json:"foods"`
}

// ProfileGetter is the part of AccountService the planner needs.
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID int64) (*model.Profile, bool, error)
}

// PlannerService turns a stored profile into a Plan.
type PlannerService struct {
	profiles ProfileGetter
	engine   *recommend.Engine
}

func NewPlannerService(profiles ProfileGetter, engine *recommend.Engine) *PlannerService {
	return &PlannerService{profiles: profiles, engine: engine}
}

// Plan builds the plan for userID. A user without a profile gets an
// apperror.ErrNotFound error.
func (s *PlannerService) Plan(ctx context.Context, userID int64) (*Plan, error) {
	p, found, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("profile", strconv.FormatInt(userID, 10))
	}
	plan := s.Compute(*p)
	return &plan, nil
}

// Compute builds a plan from p without touching storage.
func (s *PlannerService) Compute(p model.Profile) Plan {
	return Plan{
		Profile:   p,
		Summary:   metrics.Summarize(p),
		Meals:     s.engine.DietPlan(p.DietPreference),
		Exercises: s.engine.Exercises(p.Goal),
		Foods:     s.engine.Foods(p.DietPreference, p.Goal, recommend.DefaultFoodCount),
	}
}
