package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe is a document in the shared recipes catalogue. Generated recipes
// also record their author and the raw model output.
type Recipe struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID              *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Name                string              `bson:"name" json:"name"`
	Description         string              `bson:"description,omitempty" json:"description,omitempty"`
	Ingredients         []string            `bson:"ingredients" json:"ingredients"`
	Instructions        []string            `bson:"instructions,omitempty" json:"instructions,omitempty"`
	MealType            string              `bson:"meal_type,omitempty" json:"meal_type,omitempty"`
	CookingTime         int                 `bson:"cooking_time,omitempty" json:"cooking_time,omitempty"`
	DifficultyLevel     string              `bson:"difficulty_level,omitempty" json:"difficulty_level,omitempty"`
	NutritionalInfo     map[string]any      `bson:"nutritional_info,omitempty" json:"nutritional_info,omitempty"`
	SeasonalTags        []string            `bson:"seasonal_tags,omitempty" json:"seasonal_tags,omitempty"`
	ImageURL            string              `bson:"image_url,omitempty" json:"image_url,omitempty"`
	DietaryRestrictions []string            `bson:"dietary_restrictions,omitempty" json:"dietary_restrictions,omitempty"`
	Content             string              `bson:"content,omitempty" json:"content,omitempty"`
	IsCustom            bool                `bson:"is_custom" json:"is_custom"`
	CreatedAt           time.Time           `bson:"created_at" json:"created_at"`
}

// CreateRecipeRequest adds a recipe to the catalogue.
type CreateRecipeRequest struct {
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Ingredients     []string       `json:"ingredients"`
	Instructions    []string       `json:"instructions"`
	MealType        string         `json:"meal_type"`
	CookingTime     int            `json:"cooking_time"`
	DifficultyLevel string         `json:"difficulty_level"`
	NutritionalInfo map[string]any `json:"nutritional_info"`
	SeasonalTags    []string       `json:"seasonal_tags"`
	ImageURL        string         `json:"image_url"`
}

// RecipeQuery filters the catalogue. CookingTime is a bucket name.
type RecipeQuery struct {
	Search      string
	MealType    string
	CookingTime string
	Limit       int
}

// RecipeFilters echoes the applied filters back to the caller.
type RecipeFilters struct {
	Search      string `json:"search"`
	MealType    string `json:"meal_type"`
	CookingTime string `json:"cooking_time"`
}

// CookingTimeRange bounds cooking time in minutes. Min is inclusive and Max is
// exclusive; a negative bound is open.
type CookingTimeRange struct {
	Min int
	Max int
}

var cookingTimeBuckets = map[string]CookingTimeRange{
	"quick":  {Min: -1, Max: 15},
	"medium": {Min: 15, Max: 30},
	"long":   {Min: 30, Max: -1},
}

// CookingTimeBucket resolves a bucket name; unknown names report false.
func CookingTimeBucket(name string) (CookingTimeRange, bool) {
	r, ok := cookingTimeBuckets[name]
	return r, ok
}

// GenerateRecipeRequest drives AI recipe generation.
type GenerateRecipeRequest struct {
	MealType            string   `json:"meal_type"`
	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CookingTime         *int     `json:"cooking_time"`
}

// GeneratedRecipeResult is returned after a recipe was generated and stored.
type GeneratedRecipeResult struct {
	Recipe   string `json:"recipe"`
	ID       string `json:"id"`
	MealType string `json:"meal_type"`
}

// RecipeSuggestion is an unsaved AI recipe idea.
type RecipeSuggestion struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	MealType      string   `json:"meal_type"`
	CookingTime   int      `json:"cooking_time"`
	Ingredients   []string `json:"ingredients"`
	Instructions  []string `json:"instructions"`
	IsAIGenerated bool     `json:"is_ai_generated"`
}

// SuggestionQuery parameterises AI recipe suggestions.
type SuggestionQuery struct {
	Search      string
	MealType    string
	CookingTime string
}

// SuggestionResult wraps AI recipe suggestions.
type SuggestionResult struct {
	Recipes []RecipeSuggestion `json:"recipes"`
	Count   int                `json:"count"`
	Source  string             `json:"source"`
}
