package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
)

const (
	defaultRecipeLimit = 20
	maxRecipeLimit     = 50
)

// RecipeService searches and extends the shared recipe catalogue.
type RecipeService struct {
	recipes RecipeStore
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(recipes RecipeStore) *RecipeService {
	return &RecipeService{recipes: recipes}
}

// List searches the catalogue. Unknown cooking time buckets are ignored.
func (s *RecipeService) List(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, model.RecipeFilters, error) {
	q.Search = strings.TrimSpace(q.Search)
	q.MealType = strings.TrimSpace(q.MealType)
	q.CookingTime = strings.TrimSpace(q.CookingTime)
	q.Limit = clampLimit(q.Limit, defaultRecipeLimit, maxRecipeLimit)

	filters := model.RecipeFilters{Search: q.Search, MealType: q.MealType, CookingTime: q.CookingTime}
	recipes, err := s.recipes.List(ctx, q)
	if err != nil {
		return nil, filters, err
	}
	return recipes, filters, nil
}

// Get returns a single recipe.
func (s *RecipeService) Get(ctx context.Context, id string) (*model.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	recipe, err := s.recipes.GetByID(ctx, oid)
	if errors.Is(err, repository.ErrRecipeNotFound) {
		return nil, ErrRecipeNotFound
	}
	return recipe, err
}

// Create adds a recipe to the catalogue on behalf of userID.
func (s *RecipeService) Create(ctx context.Context, userID primitive.ObjectID, req model.CreateRecipeRequest) (*model.Recipe, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(req.Ingredients) == 0 || len(req.Instructions) == 0 {
		return nil, invalid("name, ingredients, and instructions are required")
	}
	if req.CookingTime < 0 {
		return nil, invalid("cooking_time must not be negative")
	}

	recipe := &model.Recipe{
		UserID:          &userID,
		Name:            name,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		MealType:        req.MealType,
		CookingTime:     req.CookingTime,
		DifficultyLevel: req.DifficultyLevel,
		NutritionalInfo: req.NutritionalInfo,
		SeasonalTags:    req.SeasonalTags,
		ImageURL:        req.ImageURL,
		CreatedAt:       timeNow(),
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}
