package handler

import (
	"net/http"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// NotificationHandler handles HTTP requests for reminders.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// HandleList handles GET /api/notifications requests.
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to get notifications")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"notifications": items, "count": len(items)}, "")
}

// HandleCreate handles POST /api/notifications requests.
func (h *NotificationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.NotificationRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	id, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create notification")
		return
	}

	writeData(w, http.StatusCreated, map[string]any{"id": id.Hex()}, "Notification created successfully")
}
