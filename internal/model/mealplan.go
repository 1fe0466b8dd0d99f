package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealPlanKind tags which variant a stored meal plan holds.
type MealPlanKind string

const (
	MealPlanFreeform   MealPlanKind = "freeform"
	MealPlanStructured MealPlanKind = "structured"
)

// MealPlan is a document in the meal_plans collection. Exactly one of
// Freeform and Structured is set, matching Kind.
type MealPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Kind       MealPlanKind       `bson:"kind" json:"kind"`
	Freeform   *FreeformPlan      `bson:"freeform,omitempty" json:"freeform,omitempty"`
	Structured *DayPlan           `bson:"structured,omitempty" json:"structured,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// FreeformPlan is a generated plan kept as the model's raw text.
type FreeformPlan struct {
	Period  string `bson:"period" json:"period"`
	Focus   string `bson:"focus" json:"focus"`
	Content string `bson:"content" json:"content"`
}

// DayPlan is one calendar day of meals, unique per (user, date).
type DayPlan struct {
	Date      time.Time `bson:"date" json:"date"`
	Breakfast *Meal     `bson:"breakfast,omitempty" json:"breakfast,omitempty"`
	Lunch     *Meal     `bson:"lunch,omitempty" json:"lunch,omitempty"`
	Dinner    *Meal     `bson:"dinner,omitempty" json:"dinner,omitempty"`
	Snacks    []Meal    `bson:"snacks,omitempty" json:"snacks,omitempty"`
	FocusArea string    `bson:"focus_area,omitempty" json:"focus_area,omitempty"`
}

// Meal is a single dish inside a day plan.
type Meal struct {
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Ingredients []string `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
}

// SaveDayPlanRequest creates or replaces the caller's plan for one date.
type SaveDayPlanRequest struct {
	Date      string `json:"date"`
	Breakfast *Meal  `json:"breakfast"`
	Lunch     *Meal  `json:"lunch"`
	Dinner    *Meal  `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
	FocusArea string `json:"focus_area"`
}

// MealPlanQuery filters the meal plan history.
type MealPlanQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// MealPlanRequest is the body of both meal plan generation endpoints.
type MealPlanRequest struct {
	Period      string         `json:"period"`
	Focus       string         `json:"focus"`
	Preferences map[string]any `json:"preferences"`
}

// FreeformMealPlanResult is returned by free-text generation.
type FreeformMealPlanResult struct {
	MealPlan string `json:"meal_plan"`
	ID       string `json:"id"`
	Period   string `json:"period"`
	Focus    string `json:"focus"`
}

// GeneratedPlan is the strict JSON shape requested from the model.
type GeneratedPlan struct {
	Period string         `json:"period"`
	Days   []GeneratedDay `json:"days"`
}

// GeneratedDay is one day of a GeneratedPlan; Date is YYYY-MM-DD.
type GeneratedDay struct {
	Date      string `json:"date"`
	Breakfast *Meal  `json:"breakfast,omitempty"`
	Lunch     *Meal  `json:"lunch,omitempty"`
	Dinner    *Meal  `json:"dinner,omitempty"`
	Snacks    []Meal `json:"snacks,omitempty"`
}
