// Package catalog loads the food and exercise catalogs used for
// recommendations.
//
// Each catalog is a CSV file with a header row. Loading never fails:
//
//   - absent file: the six-row default catalog is written to the path and
//     returned, so the next load reads the same rows back;
//   - unreadable or malformed file: a warning is logged and the defaults are
//     returned in memory, leaving the file untouched;
//   - missing optional columns or cells: filled from fixed rules (see
//     normalizeFoods).
//
// Header cells are trimmed and lower-cased, then passed through a synonym
// table so older files ("name", "cal_per_100g", "diet_tag") still load.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sakif/health-planner/internal/model"
)

// ErrMalformed marks a catalog file that exists but cannot be used.
var ErrMalformed = errors.New("malformed catalog")

// LoadFoods reads the food catalog at path. See the package doc for the
// fallback rules.
func LoadFoods(path string, logger *slog.Logger) []model.FoodItem {
	logger = loggerOrDefault(logger).With(slog.String("catalog", "foods"), slog.String("path", path))

	tbl, err := readTable(path, foodSynonyms)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		items := DefaultFoods()
		if err := writeFile(path, func(w io.Writer) error { return WriteFoods(w, items) }); err != nil {
			logger.Warn("catalog source absent and default seed could not be written", slog.String("error", err.Error()))
		} else {
			logger.Info("catalog source absent, wrote default seed", slog.Int("rows", len(items)))
		}
		return items
	case err != nil:
		logger.Warn("catalog load degraded, using defaults", slog.String("error", err.Error()))
		return DefaultFoods()
	}

	items, err := normalizeFoods(tbl, logger)
	if err != nil {
		logger.Warn("catalog load degraded, using defaults", slog.String("error", err.Error()))
		return DefaultFoods()
	}
	logger.Debug("catalog loaded", slog.Int("rows", len(items)))
	return items
}

// LoadExercises reads the exercise catalog at path with the same fallback
// rules as LoadFoods.
func LoadExercises(path string, logger *slog.Logger) []model.ExerciseItem {
	logger = loggerOrDefault(logger).With(slog.String("catalog", "exercises"), slog.String("path", path))

	tbl, err := readTable(path, exerciseSynonyms)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		items := DefaultExercises()
		if err := writeFile(path, func(w io.Writer) error { return WriteExercises(w, items) }); err != nil {
			logger.Warn("catalog source absent and default seed could not be written", slog.String("error", err.Error()))
		} else {
			logger.Info("catalog source absent, wrote default seed", slog.Int("rows", len(items)))
		}
		return items
	case err != nil:
		logger.Warn("catalog load degraded, using defaults", slog.String("error", err.Error()))
		return DefaultExercises()
	}

	items, err := normalizeExercises(tbl, logger)
	if err != nil {
		logger.Warn("catalog load degraded, using defaults", slog.String("error", err.Error()))
		return DefaultExercises()
	}
	logger.Debug("catalog loaded", slog.Int("rows", len(items)))
	return items
}

// WriteFoods writes items as a food catalog CSV, header first.
func WriteFoods(w io.Writer, items []model.FoodItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(foodHeader); err != nil {
		return fmt.Errorf("catalog: writing food header: %w", err)
	}
	for _, it := range items {
		rec := []string{it.Name, it.DietType, strconv.FormatFloat(it.Calories, 'f', -1, 64), it.MealType}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("catalog: writing food %q: %w", it.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExercises writes items as an exercise catalog CSV, header first.
func WriteExercises(w io.Writer, items []model.ExerciseItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exerciseHeader); err != nil {
		return fmt.Errorf("catalog: writing exercise header: %w", err)
	}
	for _, it := range items {
		rec := []string{it.Name, it.Goals, strconv.Itoa(it.DurationMin), it.Equipment, it.Difficulty}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("catalog: writing exercise %q: %w", it.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ErrExists is returned by SeedDefaults when a target file is already there
// and overwrite is false.
var ErrExists = errors.New("catalog file already exists")

// SeedDefaults writes the default food and exercise catalogs to the two
// paths. Existing files are only replaced when overwrite is set; otherwise
// nothing is written and the error wraps ErrExists.
func SeedDefaults(foodsPath, exercisesPath string, overwrite bool) error {
	if !overwrite {
		for _, p := range []string{foodsPath, exercisesPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("catalog: %s: %w", p, ErrExists)
			}
		}
	}
	foods := DefaultFoods()
	if err := writeFile(foodsPath, func(w io.Writer) error { return WriteFoods(w, foods) }); err != nil {
		return err
	}
	exercises := DefaultExercises()
	return writeFile(exercisesPath, func(w io.Writer) error { return WriteExercises(w, exercises) })
}

// table is a parsed CSV with canonical column names.
type table struct {
	cols map[string]int
	rows [][]string
}

func (t table) has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

// get returns the trimmed cell for col in row i, or "" if the column is
// missing or the row is short.
func (t table) get(i int, col string) string {
	idx, ok := t.cols[col]
	if !ok || idx >= len(t.rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.rows[i][idx])
}

func readTable(path string, synonyms map[string]string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, fmt.Errorf("catalog: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return table{}, fmt.Errorf("catalog: parsing %s: %w: %w", path, ErrMalformed, err)
	}
	if len(records) == 0 {
		return table{}, fmt.Errorf("catalog: %s has no header row: %w", path, ErrMalformed)
	}

	cols := make(map[string]int, len(records[0]))
	for i, cell := range records[0] {
		name := normalizeHeader(cell)
		if canonical, ok := synonyms[name]; ok {
			name = canonical
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return table{cols: cols, rows: records[1:]}, nil
}

// normalizeFoods applies the food default-fill rules:
//
//   - meal_type missing: cycled breakfast, lunch, snack, dinner by row index
//   - diet_type missing: DefaultDietType
//   - calories missing or unparseable: 0
func normalizeFoods(t table, logger *slog.Logger) ([]model.FoodItem, error) {
	if !t.has(colFoodName) {
		return nil, fmt.Errorf("catalog: no %s column: %w", colFoodName, ErrMalformed)
	}

	items := make([]model.FoodItem, 0, len(t.rows))
	badCalories := 0
	for i := range t.rows {
		item := model.FoodItem{
			Name:     t.get(i, colFoodName),
			DietType: t.get(i, colDietType),
			MealType: t.get(i, colMealType),
		}
		if item.DietType == "" {
			item.DietType = DefaultDietType
		}
		if item.MealType == "" {
			item.MealType = model.MealSlots[i%len(model.MealSlots)]
		}
		if raw := t.get(i, colCalories); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				badCalories++
			} else {
				item.Calories = v
			}
		}
		items = append(items, item)
	}
	if badCalories > 0 {
		logger.Warn("unparseable calorie values set to 0", slog.Int("rows", badCalories))
	}
	return items, nil
}

func normalizeExercises(t table, logger *slog.Logger) ([]model.ExerciseItem, error) {
	if !t.has(colExerciseName) {
		return nil, fmt.Errorf("catalog: no %s column: %w", colExerciseName, ErrMalformed)
	}

	items := make([]model.ExerciseItem, 0, len(t.rows))
	badDurations := 0
	for i := range t.rows {
		item := model.ExerciseItem{
			Name:       t.get(i, colExerciseName),
			Goals:      t.get(i, colGoals),
			Equipment:  t.get(i, colEquipment),
			Difficulty: t.get(i, colDifficulty),
		}
		if raw := t.get(i, colDuration); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				badDurations++
			} else {
				item.DurationMin = int(math.Round(v))
			}
		}
		items = append(items, item)
	}
	if badDurations > 0 {
		logger.Warn("unparseable durations set to 0", slog.Int("rows", badDurations))
	}
	return items, nil
}

func normalizeHeader(cell string) string {
	cell = strings.TrimPrefix(cell, "\ufeff")
	return strings.ToLower(strings.TrimSpace(cell))
}

// writeFile creates path (and its directory) and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("catalog: creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("catalog: creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
