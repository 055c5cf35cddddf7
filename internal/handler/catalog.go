package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/health-planner/internal/model"
)

// Catalog is the cached catalog store (see catalog.Store).
type Catalog interface {
	Foods() []model.FoodItem
	Exercises() []model.ExerciseItem
	Reload()
}

// CatalogHandler exposes the food and exercise catalogs read-only, plus a
// reload endpoint for picking up edited CSV files.
type CatalogHandler struct {
	catalog Catalog
	logger  *slog.Logger
}

func NewCatalogHandler(catalog Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) HandleFoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.catalog.Foods())
}

func (h *CatalogHandler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.catalog.Exercises())
}

// HandleReload drops the cache and reads both files again.
func (h *CatalogHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	h.catalog.Reload()
	foods, exercises := h.catalog.Foods(), h.catalog.Exercises()
	h.logger.Info("catalogs reloaded",
		slog.Int("foods", len(foods)),
		slog.Int("exercises", len(exercises)),
	)
	writeJSON(w, h.logger, http.StatusOK, map[string]int{"foods": len(foods), "exercises": len(exercises)})
}
