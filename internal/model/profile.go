package model

import "time"

// Sex values offered by the profile form. The metrics package treats any
// value that is not male-equivalent as the female formula branch.
const (
	SexMale   = "Male"
	SexFemale = "Female"
)

// Activity levels, in increasing order of daily energy expenditure.
const (
	ActivitySedentary        = "Sedentary"
	ActivityLightlyActive    = "Lightly active"
	ActivityModeratelyActive = "Moderately active"
	ActivityVeryActive       = "Very active"
	ActivityExtraActive      = "Extra active"
)

// Goals a user can pick. The first four carry a calorie adjustment; the last
// two only steer exercise matching.
const (
	GoalLoseWeight         = "Lose weight"
	GoalGainWeight         = "Gain weight"
	GoalBuildMuscle        = "Build muscle"
	GoalMaintain           = "Maintain"
	GoalImproveFlexibility = "Improve flexibility"
	GoalBetterPosture      = "Better posture"
)

// Diet preferences. Catalog rows are matched against these case-insensitively.
const (
	DietVegetarian    = "Vegetarian"
	DietNonVegetarian = "Non-Vegetarian"
	DietVegan         = "Vegan"
)

var (
	ActivityLevels = []string{
		ActivitySedentary,
		ActivityLightlyActive,
		ActivityModeratelyActive,
		ActivityVeryActive,
		ActivityExtraActive,
	}
	Goals = []string{
		GoalLoseWeight,
		GoalGainWeight,
		GoalBuildMuscle,
		GoalMaintain,
		GoalImproveFlexibility,
		GoalBetterPosture,
	}
	DietPreferences = []string{DietVegetarian, DietNonVegetarian, DietVegan}
	Sexes           = []string{SexFemale, SexMale}
)

// Profile is the body data a user fills in after registering.
//
// There is at most one Profile per user: UserID is both the primary key and
// the foreign key to users.id. Saving a profile overwrites every field.
type Profile struct {
	UserID         int64     `json:"userId"         db:"user_id"`
	Age            int       `json:"age"            db:"age"`
	Sex            string    `json:"sex"            db:"sex"`
	HeightCm       float64   `json:"heightCm"       db:"height_cm"`
	WeightKg       float64   `json:"weightKg"       db:"weight_kg"`
	ActivityLevel  string    `json:"activityLevel"  db:"activity_level"`
	Goal           string    `json:"goal"           db:"goal"`
	DietPreference string    `json:"dietPreference" db:"diet_pref"`
	CreatedAt      time.Time `json:"createdAt"      db:"created_at"`
}
