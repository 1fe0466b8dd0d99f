package handler

import (
	"net/http"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

const msgAIFailed = "AI processing failed. Please try again."

// AIHandler exposes the model-backed endpoints.
type AIHandler struct {
	service *service.AIService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(svc *service.AIService) *AIHandler {
	return &AIHandler{service: svc}
}

// HandleOnboarding handles POST /api/ai/onboarding requests.
func (h *AIHandler) HandleOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.OnboardingRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	res, err := h.service.Onboarding(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, msgAIFailed)
		return
	}

	if res.Fallback != nil {
		writeData(w, http.StatusOK, res.Fallback, "Meal plan generated (fallback)")
		return
	}
	writeData(w, http.StatusOK, res.Reply, "")
}

// HandleChat handles POST /api/ai/chat requests.
func (h *AIHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.ChatRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	out, err := h.service.Chat(r.Context(), userID, req.Message)
	if err != nil {
		writeServiceError(w, r, err, msgAIFailed)
		return
	}

	writeData(w, http.StatusOK, model.ChatResponse{Response: out}, "")
}

// HandleGenerateMealPlan handles POST /api/ai/generate-meal-plan requests.
func (h *AIHandler) HandleGenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.MealPlanRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	res, err := h.service.GenerateMealPlan(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Meal plan generation failed. Please try again.")
		return
	}

	writeData(w, http.StatusOK, res, "Meal plan generated successfully")
}

// HandleGenerateStructuredPlan handles POST /api/meal-plans/generate requests.
func (h *AIHandler) HandleGenerateStructuredPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.MealPlanRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	plan, err := h.service.GenerateStructuredPlan(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Error generating meal plan")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"mealPlan": plan}, "")
}

// HandleGenerateRecipe handles POST /api/ai/generate-recipe requests.
func (h *AIHandler) HandleGenerateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.GenerateRecipeRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	res, err := h.service.GenerateRecipe(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Recipe generation failed. Please try again.")
		return
	}

	writeData(w, http.StatusOK, res, "Recipe generated successfully")
}

// HandleSuggestions handles GET /api/recipes/ai requests.
func (h *AIHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	res, err := h.service.Suggestions(r.Context(), userID, model.SuggestionQuery{
		Search:      q.Get("search"),
		MealType:    q.Get("meal_type"),
		CookingTime: q.Get("cooking_time"),
	})
	if err != nil {
		writeServiceError(w, r, err, msgAIFailed)
		return
	}

	writeData(w, http.StatusOK, res, "")
}
