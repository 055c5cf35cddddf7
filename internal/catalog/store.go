package catalog

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/sakif/health-planner/internal/model"
)

// Store caches both catalogs for the life of the process.
//
// Each catalog is read from disk on first use. Later edits to the files are
// not seen until Reload is called. The cached slices are never modified;
// Foods and Exercises hand out copies.
type Store struct {
	foodsPath     string
	exercisesPath string
	logger        *slog.Logger

	mu        sync.Mutex
	foods     []model.FoodItem
	exercises []model.ExerciseItem
	haveFoods bool
	haveEx    bool
}

// New creates a Store for the two catalog files. Nothing is read until the
// first call to Foods or Exercises.
func New(foodsPath, exercisesPath string, logger *slog.Logger) *Store {
	return &Store{
		foodsPath:     foodsPath,
		exercisesPath: exercisesPath,
		logger:        loggerOrDefault(logger),
	}
}

// Foods returns the food catalog in file order.
func (s *Store) Foods() []model.FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.haveFoods {
		s.foods = LoadFoods(s.foodsPath, s.logger)
		s.haveFoods = true
	}
	return slices.Clone(s.foods)
}

// Exercises returns the exercise catalog in file order.
func (s *Store) Exercises() []model.ExerciseItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.haveEx {
		s.exercises = LoadExercises(s.exercisesPath, s.logger)
		s.haveEx = true
	}
	return slices.Clone(s.exercises)
}

// Reload drops both cached catalogs; the next read goes back to disk.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foods, s.exercises = nil, nil
	s.haveFoods, s.haveEx = false, false
	s.logger.Info("catalog cache cleared")
}
