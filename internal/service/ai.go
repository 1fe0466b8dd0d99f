package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

const (
	onboardingSteps       = 5
	defaultRecipeMinutes  = 30
	maxSuggestions        = 6
	suggestionNameLen     = 60
	suggestionDescription = 200
)

// OnboardingResult holds either a model reply or the fallback plan.
type OnboardingResult struct {
	Reply    *model.OnboardingResponse
	Fallback *model.OnboardingFallback
}

// AIService builds prompts from the caller's profile, calls the model and
// post-processes its output.
type AIService struct {
	users   UserStore
	plans   MealPlanStore
	recipes RecipeStore
	gen     TextGenerator
	events  events.Publisher
}

// NewAIService creates a new AIService. gen may be nil.
func NewAIService(users UserStore, plans MealPlanStore, recipes RecipeStore, gen TextGenerator, pub events.Publisher) *AIService {
	return &AIService{users: users, plans: plans, recipes: recipes, gen: gen, events: pub}
}

// Onboarding advances the onboarding dialogue by one step. Without a working
// model it returns the fixed starter plan instead of failing.
func (s *AIService) Onboarding(ctx context.Context, userID primitive.ObjectID, req model.OnboardingRequest) (OnboardingResult, error) {
	if s.gen == nil {
		return OnboardingResult{Fallback: &model.OnboardingFallback{MealPlan: onboardingFallbackPlan(timeNow())}}, nil
	}

	step := min(max(req.Step, 1), onboardingSteps)
	out, err := s.gen.Generate(ctx, onboardingPrompt(step, req.Message, req.PreviousResponses))
	if err != nil {
		slog.WarnContext(ctx, "onboarding generation failed, using fallback", "user_id", userID.Hex(), "error", err)
		return OnboardingResult{Fallback: &model.OnboardingFallback{MealPlan: onboardingFallbackPlan(timeNow())}}, nil
	}

	next := min(step+1, onboardingSteps+1)
	return OnboardingResult{Reply: &model.OnboardingResponse{
		Response:  toHTML(stripCodeFences(out)),
		Step:      next,
		Completed: next > onboardingSteps,
	}}, nil
}

// Chat answers a free-form question as HTML.
func (s *AIService) Chat(ctx context.Context, userID primitive.ObjectID, message string) (string, error) {
	if s.gen == nil {
		return "", ErrAIUnavailable
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", invalid("Message cannot be empty")
	}

	out, err := s.gen.Generate(ctx, chatPrompt(profileOf(ctx, s.users, userID), message))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIFailed, err)
	}
	return toHTML(stripCodeFences(out)), nil
}

// GenerateMealPlan produces a free-text plan and stores it verbatim.
func (s *AIService) GenerateMealPlan(ctx context.Context, userID primitive.ObjectID, req model.MealPlanRequest) (model.FreeformMealPlanResult, error) {
	if s.gen == nil {
		return model.FreeformMealPlanResult{}, ErrAIUnavailable
	}
	period := defaultString(req.Period, "week")
	focus := defaultString(req.Focus, "balanced")

	out, err := s.gen.Generate(ctx, freeformMealPlanPrompt(profileOf(ctx, s.users, userID), period, focus))
	if err != nil {
		return model.FreeformMealPlanResult{}, fmt.Errorf("%w: %v", ErrAIFailed, err)
	}

	now := timeNow()
	plan := &model.MealPlan{
		UserID:    userID,
		Kind:      model.MealPlanFreeform,
		Freeform:  &model.FreeformPlan{Period: period, Focus: focus, Content: out},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.plans.Insert(ctx, plan); err != nil {
		return model.FreeformMealPlanResult{}, err
	}
	publish(ctx, s.events, events.MealPlanGenerated, userID, plan.ID)

	return model.FreeformMealPlanResult{
		MealPlan: out,
		ID:       plan.ID.Hex(),
		Period:   period,
		Focus:    focus,
	}, nil
}

// GenerateStructuredPlan asks for a strict JSON plan. Unusable output is
// replaced by a fixed one-day plan, which is not stored; parsed days are
// upserted per date.
func (s *AIService) GenerateStructuredPlan(ctx context.Context, userID primitive.ObjectID, req model.MealPlanRequest) (model.GeneratedPlan, error) {
	if s.gen == nil {
		return model.GeneratedPlan{}, ErrAIUnavailable
	}
	period := defaultString(req.Period, "weekly")
	focus := defaultString(req.Focus, "balance")

	out, err := s.gen.Generate(ctx, structuredMealPlanPrompt(profileOf(ctx, s.users, userID), period, focus))
	if err != nil {
		slog.WarnContext(ctx, "meal plan generation failed, using fallback", "user_id", userID.Hex(), "error", err)
		return mealPlanFallback(period, timeNow()), nil
	}

	plan, ok := parseGeneratedPlan(out)
	if !ok {
		slog.WarnContext(ctx, "unparseable meal plan output, using fallback", "user_id", userID.Hex())
		return mealPlanFallback(period, timeNow()), nil
	}
	if plan.Period == "" {
		plan.Period = period
	}

	s.storeDays(ctx, userID, plan.Days, focus)
	return plan, nil
}

func (s *AIService) storeDays(ctx context.Context, userID primitive.ObjectID, days []model.GeneratedDay, focus string) {
	now := timeNow()
	for _, d := range days {
		date, err := time.Parse(time.DateOnly, d.Date)
		if err != nil {
			continue
		}
		saved, err := s.plans.UpsertDay(ctx, userID, model.DayPlan{
			Date:      date,
			Breakfast: d.Breakfast,
			Lunch:     d.Lunch,
			Dinner:    d.Dinner,
			Snacks:    d.Snacks,
			FocusArea: focus,
		}, now)
		if err != nil {
			slog.WarnContext(ctx, "storing generated day failed", "user_id", userID.Hex(), "date", d.Date, "error", err)
			continue
		}
		publish(ctx, s.events, events.MealPlanSaved, userID, saved.ID)
	}
}

// GenerateRecipe produces a recipe and stores the raw text as a custom recipe.
func (s *AIService) GenerateRecipe(ctx context.Context, userID primitive.ObjectID, req model.GenerateRecipeRequest) (model.GeneratedRecipeResult, error) {
	if s.gen == nil {
		return model.GeneratedRecipeResult{}, ErrAIUnavailable
	}
	mealType := defaultString(req.MealType, "any")
	cookingTime := defaultRecipeMinutes
	if req.CookingTime != nil && *req.CookingTime > 0 {
		cookingTime = *req.CookingTime
	}
	ingredients := nonNil(req.Ingredients)
	restrictions := nonNil(req.DietaryRestrictions)

	profile := profileOf(ctx, s.users, userID)
	out, err := s.gen.Generate(ctx, recipePrompt(profile, mealType, ingredients, restrictions, cookingTime))
	if err != nil {
		return model.GeneratedRecipeResult{}, fmt.Errorf("%w: %v", ErrAIFailed, err)
	}
	content := stripCodeFences(out)

	recipe := &model.Recipe{
		UserID:              &userID,
		Name:                fmt.Sprintf("Custom %s Recipe", titleCase(mealType)),
		MealType:            mealType,
		CookingTime:         cookingTime,
		Content:             content,
		Ingredients:         ingredients,
		DietaryRestrictions: restrictions,
		IsCustom:            true,
		CreatedAt:           timeNow(),
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return model.GeneratedRecipeResult{}, err
	}
	publish(ctx, s.events, events.RecipeGenerated, userID, recipe.ID)

	return model.GeneratedRecipeResult{Recipe: content, ID: recipe.ID.Hex(), MealType: mealType}, nil
}

// Suggestions returns up to six unsaved recipe ideas.
func (s *AIService) Suggestions(ctx context.Context, userID primitive.ObjectID, q model.SuggestionQuery) (model.SuggestionResult, error) {
	if s.gen == nil {
		return model.SuggestionResult{}, ErrAIUnavailable
	}
	mealType := defaultString(strings.TrimSpace(q.MealType), "any")
	search := strings.TrimSpace(q.Search)
	cookingTime := strings.TrimSpace(q.CookingTime)

	out, err := s.gen.Generate(ctx, suggestionsPrompt(profileOf(ctx, s.users, userID), search, mealType, cookingTime))
	if err != nil {
		return model.SuggestionResult{}, fmt.Errorf("%w: %v", ErrAIFailed, err)
	}

	recipes := parseSuggestions(stripCodeFences(out), mealType)
	return model.SuggestionResult{Recipes: recipes, Count: len(recipes), Source: "ai_generated"}, nil
}

func parseGeneratedPlan(out string) (model.GeneratedPlan, bool) {
	var plan model.GeneratedPlan
	if err := json.Unmarshal([]byte(stripCodeFences(out)), &plan); err != nil {
		return model.GeneratedPlan{}, false
	}
	if len(plan.Days) == 0 {
		return model.GeneratedPlan{}, false
	}
	return plan, true
}

// parseSuggestions reads a JSON array of recipes. Anything else is split
// into blank-line separated blocks, one suggestion per block.
func parseSuggestions(text, mealType string) []model.RecipeSuggestion {
	out := []model.RecipeSuggestion{}

	var items []map[string]any
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		for i, item := range items {
			if i == maxSuggestions {
				break
			}
			n := i + 1
			out = append(out, model.RecipeSuggestion{
				ID:            suggestionID(n),
				Name:          defaultString(stringField(item, "name"), fmt.Sprintf("AI Recipe %d", n)),
				Description:   stringField(item, "description"),
				MealType:      defaultString(stringField(item, "meal_type"), mealType),
				CookingTime:   intField(item, "cooking_time", defaultRecipeMinutes),
				Ingredients:   stringsField(item, "ingredients"),
				Instructions:  stringsField(item, "instructions"),
				IsAIGenerated: true,
			})
		}
		return out
	}

	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		n := len(out) + 1
		first, _, _ := strings.Cut(block, "\n")
		desc := block
		if len([]rune(block)) > suggestionDescription {
			desc = truncateRunes(block, suggestionDescription) + "..."
		}
		out = append(out, model.RecipeSuggestion{
			ID:            suggestionID(n),
			Name:          truncateRunes(first, suggestionNameLen),
			Description:   desc,
			MealType:      mealType,
			CookingTime:   defaultRecipeMinutes,
			Ingredients:   []string{},
			Instructions:  []string{},
			IsAIGenerated: true,
		})
		if n == maxSuggestions {
			break
		}
	}
	return out
}

func suggestionID(n int) string {
	return "ai_recipe_" + strconv.Itoa(n)
}

func onboardingFallbackPlan(now time.Time) model.GeneratedPlan {
	return model.GeneratedPlan{
		Period: "week",
		Days: []model.GeneratedDay{{
			Date:      now.Format(time.DateOnly),
			Breakfast: &model.Meal{Name: "Satvic Porridge", Description: "Warm oats with fruits and nuts"},
			Lunch:     &model.Meal{Name: "Khichdi Bowl", Description: "Rice-lentil khichdi with veggies"},
			Dinner:    &model.Meal{Name: "Moong Dal Soup", Description: "Light dal soup with salad"},
		}},
	}
}

func mealPlanFallback(period string, now time.Time) model.GeneratedPlan {
	return model.GeneratedPlan{
		Period: period,
		Days: []model.GeneratedDay{{
			Date:      now.Format(time.DateOnly),
			Breakfast: &model.Meal{Name: "Fruit Bowl", Description: "Seasonal fruits with seeds"},
			Lunch:     &model.Meal{Name: "Vegetable Khichdi", Description: "Comforting one-pot meal"},
			Dinner:    &model.Meal{Name: "Vegetable Soup", Description: "Light soup with steamed veggies"},
		}},
	}
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func floatField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func intField(m map[string]any, key string, def int) int {
	if f, ok := floatField(m, key); ok && f > 0 {
		return int(f)
	}
	return def
}

func stringsField(m map[string]any, key string) []string {
	out := []string{}
	list, _ := m[key].([]any)
	for _, v := range list {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
