package handler

import (
	"net/http"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// ProfileHandler serves the caller's own account.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleGet handles GET /api/users/profile requests.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve profile")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"user": user}, "")
}

// HandleUpdate handles PUT /api/users/profile requests.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	if err := h.service.Update(r.Context(), userID, req); err != nil {
		writeServiceError(w, r, err, "Profile update failed")
		return
	}

	writeData(w, http.StatusOK, nil, "Profile updated successfully")
}
