package handler

import (
	"net/http"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, authBodyLimit, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Registration failed. Please try again.")
		return
	}

	writeData(w, http.StatusCreated, resp, "Account created successfully")
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, authBodyLimit, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Login failed. Please try again.")
		return
	}

	writeData(w, http.StatusOK, resp, "Login successful")
}

// HandleVerify handles GET /api/auth/verify requests.
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.Verify(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve profile")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"user": user}, "")
}
