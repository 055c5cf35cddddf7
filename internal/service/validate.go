package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
)

// Profile field bounds accepted from the profile form and the calculator.
const (
	MinAge      = 10
	MaxAge      = 100
	MinHeightCm = 100.0
	MaxHeightCm = 220.0
	MinWeightKg = 20.0
	MaxWeightKg = 200.0
)

const (
	MaxUsernameLength = 64
	MaxFullNameLength = 100
	MaxNotesLength    = 1000
)

// ValidateProfile checks ranges and enumerated fields of p, after rewriting
// the enumerated fields to their canonical spelling (see
// CanonicalizeProfile). Sex may be free text but must not be blank.
//
// It guards the input boundaries (HTTP handlers, CLI). Storage does not call
// it, so a stored profile may carry values the metrics package handles with
// its defaults.
func ValidateProfile(p *model.Profile) error {
	CanonicalizeProfile(p)

	if p.Age < MinAge || p.Age > MaxAge {
		return apperror.ValidationFailed("age", fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	if p.HeightCm < MinHeightCm || p.HeightCm > MaxHeightCm {
		return apperror.ValidationFailed("heightCm",
			fmt.Sprintf("height must be between %g and %g cm", MinHeightCm, MaxHeightCm))
	}
	if p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		return apperror.ValidationFailed("weightKg",
			fmt.Sprintf("weight must be between %g and %g kg", MinWeightKg, MaxWeightKg))
	}
	if p.Sex == "" {
		return apperror.ValidationFailed("sex", "sex is required")
	}
	if !slices.Contains(model.ActivityLevels, p.ActivityLevel) {
		return apperror.ValidationFailed("activityLevel", "activity level must be one of: "+strings.Join(model.ActivityLevels, ", "))
	}
	if !slices.Contains(model.Goals, p.Goal) {
		return apperror.ValidationFailed("goal", "goal must be one of: "+strings.Join(model.Goals, ", "))
	}
	if !slices.Contains(model.DietPreferences, p.DietPreference) {
		return apperror.ValidationFailed("dietPreference", "diet preference must be one of: "+strings.Join(model.DietPreferences, ", "))
	}
	return nil
}

// CanonicalizeProfile trims sex and rewrites known enumerated values to their
// canonical spelling ("lightly ACTIVE" becomes "Lightly active"). Unknown
// values are left as given. It never fails.
func CanonicalizeProfile(p *model.Profile) {
	p.Sex = strings.TrimSpace(p.Sex)
	p.Sex, _ = canonical(p.Sex, model.Sexes)
	p.ActivityLevel, _ = canonical(p.ActivityLevel, model.ActivityLevels)
	p.Goal, _ = canonical(p.Goal, model.Goals)
	p.DietPreference, _ = canonical(p.DietPreference, model.DietPreferences)
}

// canonical returns the entry of allowed equal to v ignoring case and
// surrounding space. On no match it returns v unchanged and false.
func canonical(v string, allowed []string) (string, bool) {
	t := strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(t, a) {
			return a, true
		}
	}
	return v, false
}
