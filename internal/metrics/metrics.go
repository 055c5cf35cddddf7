// Package metrics computes body metrics from profile numbers: BMI and its
// category, BMR (Mifflin-St Jeor), TDEE and a goal-adjusted calorie target.
//
// Every function here is pure and total. Input that makes a metric
// meaningless (non-positive height, unknown activity level, unknown goal)
// maps to a documented sentinel or default instead of an error.
package metrics

import (
	"math"
	"strings"

	"github.com/sakif/health-planner/internal/model"
)

// Category is the WHO adult BMI band.
type Category string

const (
	Unknown     Category = "Unknown"
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// DefaultActivityMultiplier applies to any activity level not in the table.
const DefaultActivityMultiplier = 1.2

// activityMultipliers maps normalized activity level names to their TDEE
// multiplier. Keys are lower-case; see normalize.
var activityMultipliers = map[string]float64{
	normalize(model.ActivitySedentary):        1.2,
	normalize(model.ActivityLightlyActive):    1.375,
	normalize(model.ActivityModeratelyActive): 1.55,
	normalize(model.ActivityVeryActive):       1.725,
	normalize(model.ActivityExtraActive):      1.9,
}

// goalAdjustments is the kcal/day offset applied on top of TDEE.
// Goals missing from the table (flexibility, posture, anything unknown) get 0.
var goalAdjustments = map[string]float64{
	normalize(model.GoalLoseWeight):  -500,
	normalize(model.GoalGainWeight):  300,
	normalize(model.GoalBuildMuscle): 250,
	normalize(model.GoalMaintain):    0,
}

// maleTokens are the sex values that select the male BMR branch.
var maleTokens = map[string]bool{
	"male": true,
	"m":    true,
	"man":  true,
}

// BMI is a body mass index that may be undefined.
// Valid is false when height was not positive; Value is then 0.
type BMI struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Category returns the band for b, or Unknown if b is undefined.
func (b BMI) Category() Category {
	return CategoryOf(b)
}

// ComputeBMI returns weight / height(m)^2 rounded to one decimal.
// A height of zero or below yields an undefined BMI rather than a division
// by zero.
func ComputeBMI(weightKg, heightCm float64) BMI {
	if heightCm <= 0 {
		return BMI{}
	}
	m := heightCm / 100
	return BMI{Value: roundTo(weightKg/(m*m), 1), Valid: true}
}

// CategoryOf classifies b. Each band includes its lower bound, so 18.5 is
// Normal and 25.0 is Overweight.
func CategoryOf(b BMI) Category {
	if !b.Valid {
		return Unknown
	}
	switch {
	case b.Value < 18.5:
		return Underweight
	case b.Value < 25:
		return Normal
	case b.Value < 30:
		return Overweight
	default:
		return Obese
	}
}

// IsMale reports whether sex selects the male BMR branch.
func IsMale(sex string) bool {
	return maleTokens[normalize(sex)]
}

// ComputeBMR estimates basal metabolic rate in kcal/day with the
// Mifflin-St Jeor equation:
//
//	male:      10w + 6.25h - 5a + 5
//	otherwise: 10w + 6.25h - 5a - 161
//
// Any sex value that is not male-equivalent, including "", takes the second
// branch. The result is rounded to the nearest integer.
func ComputeBMR(sex string, weightKg, heightCm float64, age int) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if IsMale(sex) {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// ActivityMultiplier returns the TDEE multiplier for level, matched
// case-insensitively. Unknown levels get the sedentary value.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[normalize(level)]; ok {
		return m
	}
	return DefaultActivityMultiplier
}

// GoalAdjustment returns the kcal/day offset for goal, matched
// case-insensitively. Unknown goals are treated as maintenance.
func GoalAdjustment(goal string) float64 {
	return goalAdjustments[normalize(goal)]
}

// ComputeTDEE returns bmr scaled by the activity multiplier, rounded.
func ComputeTDEE(bmr int, activityLevel string) int {
	return int(math.Round(float64(bmr) * ActivityMultiplier(activityLevel)))
}

// TargetCalories returns round(bmr * activity multiplier + goal adjustment).
//
// The rounding happens once, on the final sum, so TargetCalories can differ
// by one from ComputeTDEE + GoalAdjustment.
func TargetCalories(bmr int, activityLevel, goal string) int {
	return int(math.Round(float64(bmr)*ActivityMultiplier(activityLevel) + GoalAdjustment(goal)))
}

// WantsSurplus reports whether goal implies eating above maintenance.
func WantsSurplus(goal string) bool {
	switch normalize(goal) {
	case normalize(model.GoalGainWeight), normalize(model.GoalBuildMuscle):
		return true
	}
	return false
}

// Summary bundles every metric derived from one profile.
type Summary struct {
	BMI            BMI      `json:"bmi"`
	Category       Category `json:"category"`
	BMR            int      `json:"bmr"`
	TDEE           int      `json:"tdee"`
	TargetCalories int      `json:"targetCalories"`
}

// Summarize computes all metrics for p.
func Summarize(p model.Profile) Summary {
	bmi := ComputeBMI(p.WeightKg, p.HeightCm)
	bmr := ComputeBMR(p.Sex, p.WeightKg, p.HeightCm, p.Age)
	return Summary{
		BMI:            bmi,
		Category:       bmi.Category(),
		BMR:            bmr,
		TDEE:           ComputeTDEE(bmr, p.ActivityLevel),
		TargetCalories: TargetCalories(bmr, p.ActivityLevel, p.Goal),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
