package service

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrMealPlanNotFound   = errors.New("meal plan not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrAIUnavailable      = errors.New("AI service is not configured")
	ErrAIFailed           = errors.New("AI service call failed")
)

// ValidationError reports missing or malformed input. Msg is safe to show
// to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
