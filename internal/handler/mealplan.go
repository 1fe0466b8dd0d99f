package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// MealPlanHandler handles HTTP requests for stored meal plans.
type MealPlanHandler struct {
	service *service.MealPlanService
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(svc *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{service: svc}
}

// HandleList handles GET /api/meal-plans requests.
func (h *MealPlanHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	plans, err := h.service.List(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve meal plans")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"meal_plans": plans, "count": len(plans)}, "")
}

// HandleSave handles POST /api/meal-plans requests.
func (h *MealPlanHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.SaveDayPlanRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	plan, err := h.service.Save(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Error saving meal plan")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"mealPlan": plan}, "")
}

// HandleGet handles GET /api/meal-plans/{id} requests.
func (h *MealPlanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	plan, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve meal plan")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"meal_plan": plan}, "")
}

// HandleDelete handles DELETE /api/meal-plans/{id} requests.
func (h *MealPlanHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "Error deleting meal plan")
		return
	}

	writeData(w, http.StatusOK, nil, "Meal plan deleted successfully")
}
