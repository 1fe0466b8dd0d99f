package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/middleware"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

const (
	authBodyLimit    = 1 << 20  // 1MB
	defaultBodyLimit = 10 << 20 // 10MB

	msgBadRequest     = "Bad request"
	msgBodyTooLarge   = "Request body too large"
	msgUnauthorized   = "Unauthorized access"
	msgNotFound       = "Endpoint not found"
	msgMethodNotAllow = "Method not allowed"
	msgAIUnavailable  = "AI service is currently unavailable. Please check your API key configuration."
)

// envelope is the shape of every response body.
type envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, envelope{Error: msg})
}

// decodeJSON reads a capped JSON body into dst. An empty body leaves dst
// untouched. It writes the error response itself and reports false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return false
	}
	writeError(w, http.StatusBadRequest, msgBadRequest)
	return false
}

// requireUser returns the caller set by the auth middleware.
func requireUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
	}
	return id, ok
}

// writeServiceError maps service errors onto status codes. Unrecognised
// errors are logged and answered with the generic message for the operation.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrMealPlanNotFound):
		writeError(w, http.StatusNotFound, "Meal plan not found")
	case errors.Is(err, service.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "Recipe not found")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "User already exists with this email")
	case errors.Is(err, service.ErrAIUnavailable):
		writeError(w, http.StatusServiceUnavailable, msgAIUnavailable)
	case errors.Is(err, service.ErrAIFailed):
		slog.WarnContext(r.Context(), "AI request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusServiceUnavailable, generic)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, generic)
	}
}

// queryInt parses an integer query parameter; absent or malformed values
// yield 0 so that the service default applies.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
