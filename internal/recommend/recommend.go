// Package recommend picks diet and exercise suggestions from the catalogs.
//
// Matching is by tag: meal slot and diet preference for foods, the first word
// of the goal for exercises. When a filter leaves nothing, the engine widens
// to the broadest subset it still has; only an empty catalog yields a
// "no data" result. Random choices go through the Engine's own *rand.Rand so
// tests can fix the seed.
package recommend

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sakif/health-planner/internal/metrics"
	"github.com/sakif/health-planner/internal/model"
)

const (
	// MaxExercises caps the matched exercise list.
	MaxExercises = 5
	// FallbackExercises caps the random sample used when nothing matches.
	FallbackExercises = 3
	// DefaultFoodCount is used by Foods when n is not positive.
	DefaultFoodCount = 4
)

// Catalog is the read side of the catalog store.
type Catalog interface {
	Foods() []model.FoodItem
	Exercises() []model.ExerciseItem
}

// MealSuggestion is the pick for one meal slot. NoData is set when the
// catalog has no food at all for that slot; Name and Calories are then empty.
type MealSuggestion struct {
	Meal     string  `json:"meal"`
	Name     string  `json:"name,omitempty"`
	Calories float64 `json:"calories,omitempty"`
	NoData   bool    `json:"noData,omitempty"`
}

// ExercisePlan holds suggested exercises. Matched is false when no row
// matched the goal and Items is a random fallback sample.
type ExercisePlan struct {
	Items   []model.ExerciseItem `json:"items"`
	Matched bool                 `json:"matched"`
}

// Engine produces recommendations. It is safe for concurrent use.
type Engine struct {
	catalog Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an Engine drawing randomness from rng.
func New(catalog Catalog, rng *rand.Rand) *Engine {
	return &Engine{catalog: catalog, rng: rng}
}

// NewSeeded creates an Engine with a PCG source seeded from seed. Equal
// seeds over equal catalogs give equal recommendations.
func NewSeeded(catalog Catalog, seed uint64) *Engine {
	return New(catalog, rand.New(rand.NewPCG(seed, seed)))
}

// SeedOrClock returns seed, or a seed taken from the clock when seed is 0.
func SeedOrClock(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// DietPlan returns one suggestion per meal slot, in slot order.
func (e *Engine) DietPlan(dietPref string) []MealSuggestion {
	foods := e.catalog.Foods()
	plan := make([]MealSuggestion, 0, len(model.MealSlots))

	for _, slot := range model.MealSlots {
		inSlot := filter(foods, func(f model.FoodItem) bool {
			return strings.EqualFold(strings.TrimSpace(f.MealType), slot)
		})
		if len(inSlot) == 0 {
			plan = append(plan, MealSuggestion{Meal: slot, NoData: true})
			continue
		}

		candidates := filter(inSlot, func(f model.FoodItem) bool {
			return strings.EqualFold(strings.TrimSpace(f.DietType), strings.TrimSpace(dietPref))
		})
		if len(candidates) == 0 {
			candidates = inSlot
		}

		pick := candidates[e.intN(len(candidates))]
		plan = append(plan, MealSuggestion{Meal: slot, Name: pick.Name, Calories: pick.Calories})
	}
	return plan
}

// MatchKey returns the lower-cased first word of goal, or "" if goal is blank.
func MatchKey(goal string) string {
	fields := strings.Fields(goal)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Exercises suggests exercises for goal.
//
// Rows whose goal tags contain MatchKey(goal) are returned in catalog order,
// at most MaxExercises of them. With no match (a blank goal never matches)
// a random sample of at most FallbackExercises rows is returned instead.
func (e *Engine) Exercises(goal string) ExercisePlan {
	all := e.catalog.Exercises()

	if key := MatchKey(goal); key != "" {
		matched := filter(all, func(x model.ExerciseItem) bool {
			return strings.Contains(strings.ToLower(x.Goals), key)
		})
		if len(matched) > 0 {
			if len(matched) > MaxExercises {
				matched = matched[:MaxExercises]
			}
			return ExercisePlan{Items: matched, Matched: true}
		}
	}

	return ExercisePlan{Items: e.sample(all, FallbackExercises)}
}

// Foods is the bulk food list: rows whose diet tag contains dietPref
// (case-insensitive), or the whole catalog if none do, sorted by calories.
// The sort is descending for surplus goals and ascending otherwise; ties keep
// catalog order. At most n items are returned, DefaultFoodCount if n <= 0.
func (e *Engine) Foods(dietPref, goal string, n int) []model.FoodItem {
	if n <= 0 {
		n = DefaultFoodCount
	}
	all := e.catalog.Foods()

	pref := strings.ToLower(strings.TrimSpace(dietPref))
	items := filter(all, func(f model.FoodItem) bool {
		return strings.Contains(strings.ToLower(f.DietType), pref)
	})
	if len(items) == 0 {
		items = slices.Clone(all)
	}

	desc := metrics.WantsSurplus(goal)
	slices.SortStableFunc(items, func(a, b model.FoodItem) int {
		if desc {
			return cmp.Compare(b.Calories, a.Calories)
		}
		return cmp.Compare(a.Calories, b.Calories)
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

// sample returns up to k distinct items of src in random order.
func (e *Engine) sample(src []model.ExerciseItem, k int) []model.ExerciseItem {
	if len(src) == 0 {
		return []model.ExerciseItem{}
	}
	k = min(k, len(src))

	e.mu.Lock()
	perm := e.rng.Perm(len(src))
	e.mu.Unlock()

	out := make([]model.ExerciseItem, k)
	for i := range k {
		out[i] = src[perm[i]]
	}
	return out
}

func (e *Engine) intN(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.IntN(n)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
