package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// RecipeHandler handles HTTP requests for the recipe catalogue.
type RecipeHandler struct {
	service *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: svc}
}

// HandleList handles GET /api/recipes requests.
func (h *RecipeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	q := r.URL.Query()
	recipes, filters, err := h.service.List(r.Context(), model.RecipeQuery{
		Search:      q.Get("search"),
		MealType:    q.Get("meal_type"),
		CookingTime: q.Get("cooking_time"),
		Limit:       queryInt(r, "limit"),
	})
	if err != nil {
		writeServiceError(w, r, err, "Recipe search failed")
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"recipes":         recipes,
		"count":           len(recipes),
		"filters_applied": filters,
	}, "")
}

// HandleGet handles GET /api/recipes/{id} requests.
func (h *RecipeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	recipe, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching recipe")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"recipe": recipe}, "")
}

// HandleCreate handles POST /api/recipes requests.
func (h *RecipeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.CreateRecipeRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	recipe, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Error creating recipe")
		return
	}

	writeData(w, http.StatusCreated, map[string]any{"recipe": recipe}, "")
}
