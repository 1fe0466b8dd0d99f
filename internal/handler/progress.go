package handler

import (
	"net/http"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// ProgressHandler handles HTTP requests for progress check-ins.
type ProgressHandler struct {
	service *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(svc *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: svc}
}

// HandleList handles GET /api/progress requests.
func (h *ProgressHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	entries, err := h.service.List(r.Context(), userID, queryInt(r, "limit"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeServiceError(w, r, err, "Progress retrieval failed")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"progress": entries, "count": len(entries)}, "")
}

// HandleRecord handles POST /api/progress requests.
func (h *ProgressHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.ProgressRequest
	if !decodeJSON(w, r, defaultBodyLimit, &req) {
		return
	}

	id, err := h.service.Record(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to record progress")
		return
	}

	writeData(w, http.StatusCreated, map[string]any{"id": id.Hex()}, "Progress recorded successfully")
}

// HandleAnalytics handles GET /api/progress/analytics requests.
func (h *ProgressHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	res, err := h.service.Analytics(r.Context(), userID, queryInt(r, "days"))
	if err != nil {
		writeServiceError(w, r, err, "Analytics retrieval failed")
		return
	}

	writeData(w, http.StatusOK, res, "")
}
