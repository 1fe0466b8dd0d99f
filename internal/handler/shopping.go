package handler

import (
	"net/http"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// ShoppingHandler serves grocery list generation and history.
type ShoppingHandler struct {
	service *service.ShoppingService
}

// NewShoppingHandler creates a ShoppingHandler.
func NewShoppingHandler(svc *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{service: svc}
}

// HandleGenerate handles POST /api/shopping/generate requests.
func (h *ShoppingHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.ShoppingRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	list, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate shopping list")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"summary": list.Summary, "items": list.Items}, "")
}

// HandleHistory handles GET /api/shopping requests.
func (h *ShoppingHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	lists, err := h.service.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve shopping lists")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"shopping_lists": lists, "count": len(lists)}, "")
}
