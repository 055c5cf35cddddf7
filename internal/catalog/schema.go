package catalog

import "github.com/sakif/health-planner/internal/model"

// Canonical column names of the two catalog files.
const (
	colFoodName     = "food_name"
	colDietType     = "diet_type"
	colCalories     = "cal_per_serving"
	colMealType     = "meal_type"
	colExerciseName = "exercise_name"
	colGoals        = "goals"
	colDuration     = "duration_min"
	colEquipment    = "equipment"
	colDifficulty   = "difficulty"
)

// DefaultDietType fills rows whose diet_type is missing.
const DefaultDietType = model.DietVegetarian

var (
	foodHeader     = []string{colFoodName, colDietType, colCalories, colMealType}
	exerciseHeader = []string{colExerciseName, colGoals, colDuration, colEquipment, colDifficulty}
)

// foodSynonyms maps legacy or alternate header names to canonical columns.
// Header cells are trimmed and lower-cased before lookup.
var foodSynonyms = map[string]string{
	"name":         colFoodName,
	"food":         colFoodName,
	"cal_per_100g": colCalories,
	"calories":     colCalories,
	"kcal":         colCalories,
	"diet_tag":     colDietType,
	"diet":         colDietType,
	"meal":         colMealType,
}

var exerciseSynonyms = map[string]string{
	"name":     colExerciseName,
	"exercise": colExerciseName,
	"goal_tag": colGoals,
	"goal":     colGoals,
	"duration": colDuration,
	"level":    colDifficulty,
}

// DefaultFoods returns the seed food catalog: six rows covering every meal
// slot with mixed diet tags.
func DefaultFoods() []model.FoodItem {
	return []model.FoodItem{
		{Name: "Oatmeal with Berries", DietType: model.DietVegetarian, Calories: 250, MealType: model.MealBreakfast},
		{Name: "Tofu Scramble", DietType: model.DietVegan, Calories: 220, MealType: model.MealBreakfast},
		{Name: "Grilled Chicken Salad", DietType: model.DietNonVegetarian, Calories: 350, MealType: model.MealLunch},
		{Name: "Lentil Soup", DietType: model.DietVegan, Calories: 300, MealType: model.MealLunch},
		{Name: "Greek Yogurt with Nuts", DietType: model.DietVegetarian, Calories: 180, MealType: model.MealSnack},
		{Name: "Salmon with Quinoa", DietType: model.DietNonVegetarian, Calories: 450, MealType: model.MealDinner},
	}
}

// DefaultExercises returns the seed exercise catalog.
func DefaultExercises() []model.ExerciseItem {
	return []model.ExerciseItem{
		{Name: "Brisk Walking", Goals: "Lose weight,Maintain", DurationMin: 30, Equipment: "None", Difficulty: "Beginner"},
		{Name: "HIIT Circuit", Goals: "Lose weight,Build muscle", DurationMin: 20, Equipment: "None", Difficulty: "Advanced"},
		{Name: "Bodyweight Squats", Goals: "Build muscle,Gain weight", DurationMin: 15, Equipment: "None", Difficulty: "Beginner"},
		{Name: "Dumbbell Bench Press", Goals: "Build muscle,Gain weight", DurationMin: 25, Equipment: "Dumbbells", Difficulty: "Intermediate"},
		{Name: "Yoga Flow", Goals: "Improve flexibility,Better posture,Maintain", DurationMin: 30, Equipment: "Mat", Difficulty: "Beginner"},
		{Name: "Cycling", Goals: "Lose weight,Maintain", DurationMin: 40, Equipment: "Bicycle", Difficulty: "Intermediate"},
	}
}
