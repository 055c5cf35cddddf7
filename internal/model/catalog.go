package model

// Meal slots in the order a daily plan lists them.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealSnack     = "snack"
	MealDinner    = "dinner"
)

var MealSlots = []string{MealBreakfast, MealLunch, MealSnack, MealDinner}

// FoodItem is one row of the food catalog.
// Calories are per reference serving.
type FoodItem struct {
	Name     string  `json:"name"`
	DietType string  `json:"dietType"`
	Calories float64 `json:"calories"`
	MealType string  `json:"mealType"`
}

// ExerciseItem is one row of the exercise catalog.
// Goals is a comma-separated tag list such as "Lose weight,Maintain".
type ExerciseItem struct {
	Name        string `json:"name"`
	Goals       string `json:"goals"`
	DurationMin int    `json:"durationMin"`
	Equipment   string `json:"equipment"`
	Difficulty  string `json:"difficulty"`
}
