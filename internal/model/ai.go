package model

// OnboardingRequest is one turn of the onboarding dialogue.
type OnboardingRequest struct {
	Message           string         `json:"message"`
	Step              int            `json:"step"`
	PreviousResponses map[string]any `json:"previousResponses"`
}

// OnboardingResponse is the assistant's reply and the next step.
type OnboardingResponse struct {
	Response  string `json:"response"`
	Step      int    `json:"step"`
	Completed bool   `json:"completed"`
}

// OnboardingFallback is returned when no model is available.
type OnboardingFallback struct {
	MealPlan GeneratedPlan `json:"mealPlan"`
}

// ChatRequest is a free-form question to the assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse wraps the assistant's HTML answer.
type ChatResponse struct {
	Response string `json:"response"`
}
