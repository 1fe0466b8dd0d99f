package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

type aiFixture struct {
	svc     *AIService
	userID  primitive.ObjectID
	gen     *fakeGen
	plans   *fakePlans
	recipes *fakeRecipes
	pub     *recordingPublisher
}

func newAIFixture(gen *fakeGen) aiFixture {
	users := &fakeUsers{}
	age := 30
	p := model.EmptyProfile()
	p.Age = &age
	p.HealthGoals = []string{"better sleep"}
	id := users.add(model.User{Email: "ai@example.com", Profile: p})

	f := aiFixture{userID: id, gen: gen, plans: &fakePlans{}, recipes: &fakeRecipes{}, pub: &recordingPublisher{}}
	var tg TextGenerator
	if gen != nil {
		tg = gen
	}
	f.svc = NewAIService(users, f.plans, f.recipes, tg, f.pub)
	return f
}

func TestOnboarding_FallbackWithoutModel(t *testing.T) {
	f := newAIFixture(nil)

	res, err := f.svc.Onboarding(context.Background(), f.userID, model.OnboardingRequest{Message: "hi", Step: 1})
	require.NoError(t, err)
	assert.Nil(t, res.Reply)
	require.NotNil(t, res.Fallback)
	require.Len(t, res.Fallback.MealPlan.Days, 1)
	assert.Equal(t, "Satvic Porridge", res.Fallback.MealPlan.Days[0].Breakfast.Name)
}

func TestOnboarding_FallbackOnModelError(t *testing.T) {
	f := newAIFixture(&fakeGen{err: errors.New("quota")})

	res, err := f.svc.Onboarding(context.Background(), f.userID, model.OnboardingRequest{Step: 2})
	require.NoError(t, err)
	assert.NotNil(t, res.Fallback)
}

func TestOnboarding_StepProgression(t *testing.T) {
	tests := []struct {
		step      int
		wantNext  int
		completed bool
	}{
		{0, 2, false},
		{1, 2, false},
		{4, 5, false},
		{5, 6, true},
		{9, 6, true},
	}

	for _, tt := range tests {
		f := newAIFixture(&fakeGen{out: "Tell me more.\n\nWhat do you eat?"})

		res, err := f.svc.Onboarding(context.Background(), f.userID, model.OnboardingRequest{Message: "hello", Step: tt.step})
		require.NoError(t, err)
		require.NotNil(t, res.Reply)
		assert.Equal(t, tt.wantNext, res.Reply.Step, "step %d", tt.step)
		assert.Equal(t, tt.completed, res.Reply.Completed, "step %d", tt.step)
		assert.Equal(t, "<p>Tell me more.</p><p>What do you eat?</p>", res.Reply.Response)
	}
}

func TestChat(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		f := newAIFixture(nil)
		_, err := f.svc.Chat(context.Background(), f.userID, "hi")
		assert.ErrorIs(t, err, ErrAIUnavailable)
	})

	t.Run("empty message", func(t *testing.T) {
		f := newAIFixture(&fakeGen{out: "x"})
		_, err := f.svc.Chat(context.Background(), f.userID, "   ")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Message cannot be empty", verr.Msg)
	})

	t.Run("model failure", func(t *testing.T) {
		f := newAIFixture(&fakeGen{err: errors.New("boom")})
		_, err := f.svc.Chat(context.Background(), f.userID, "hi")
		assert.ErrorIs(t, err, ErrAIFailed)
	})

	t.Run("profile reaches prompt", func(t *testing.T) {
		f := newAIFixture(&fakeGen{out: "<b>Eat fruit</b>"})
		out, err := f.svc.Chat(context.Background(), f.userID, "What for breakfast?")
		require.NoError(t, err)
		assert.Equal(t, "<b>Eat fruit</b>", out)
		require.Len(t, f.gen.prompts, 1)
		assert.Contains(t, f.gen.prompts[0], "better sleep")
		assert.Contains(t, f.gen.prompts[0], "What for breakfast?")
	})
}

func TestGenerateMealPlan_StoresRawText(t *testing.T) {
	f := newAIFixture(&fakeGen{out: "Day 1: fruit\nDay 2: khichdi"})

	res, err := f.svc.GenerateMealPlan(context.Background(), f.userID, model.MealPlanRequest{})
	require.NoError(t, err)
	assert.Equal(t, "week", res.Period)
	assert.Equal(t, "balanced", res.Focus)
	assert.Equal(t, "Day 1: fruit\nDay 2: khichdi", res.MealPlan)

	require.Len(t, f.plans.plans, 1)
	stored := f.plans.plans[0]
	assert.Equal(t, res.ID, stored.ID.Hex())
	assert.Equal(t, model.MealPlanFreeform, stored.Kind)
	assert.Equal(t, res.MealPlan, stored.Freeform.Content)
	assert.Equal(t, []string{events.MealPlanGenerated}, f.pub.subjects)
}

func TestGenerateMealPlan_ModelFailureStoresNothing(t *testing.T) {
	f := newAIFixture(&fakeGen{err: errors.New("boom")})

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID, model.MealPlanRequest{Period: "day"})
	assert.ErrorIs(t, err, ErrAIFailed)
	assert.Empty(t, f.plans.plans)
}

const structuredOutput = "```json\n" + `{
  "period": "weekly",
  "days": [
    {"date": "2025-03-01", "breakfast": {"name": "Papaya bowl"}, "lunch": {"name": "Khichdi"}, "dinner": {"name": "Lauki soup"}},
    {"date": "2025-03-02", "breakfast": {"name": "Poha"}},
    {"date": "someday", "breakfast": {"name": "Ignored"}}
  ]
}` + "\n```"

func TestGenerateStructuredPlan_UpsertsDays(t *testing.T) {
	f := newAIFixture(&fakeGen{out: structuredOutput})

	plan, err := f.svc.GenerateStructuredPlan(context.Background(), f.userID, model.MealPlanRequest{Focus: "digestion"})
	require.NoError(t, err)
	assert.Equal(t, "weekly", plan.Period)
	assert.Len(t, plan.Days, 3)

	require.Len(t, f.plans.plans, 2)
	assert.Equal(t, "digestion", f.plans.plans[0].Structured.FocusArea)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), f.plans.plans[0].Structured.Date)
	assert.Equal(t, []string{events.MealPlanSaved, events.MealPlanSaved}, f.pub.subjects)

	// Regenerating the same dates replaces rather than duplicates.
	_, err = f.svc.GenerateStructuredPlan(context.Background(), f.userID, model.MealPlanRequest{})
	require.NoError(t, err)
	assert.Len(t, f.plans.plans, 2)
	assert.Equal(t, "balance", f.plans.plans[0].Structured.FocusArea)
}

func TestGenerateStructuredPlan_Fallbacks(t *testing.T) {
	for name, gen := range map[string]*fakeGen{
		"model error": {err: errors.New("boom")},
		"not json":    {out: "Here is your plan: eat well"},
		"no days":     {out: `{"period":"weekly","days":[]}`},
	} {
		t.Run(name, func(t *testing.T) {
			f := newAIFixture(gen)

			plan, err := f.svc.GenerateStructuredPlan(context.Background(), f.userID, model.MealPlanRequest{Period: "daily"})
			require.NoError(t, err)
			assert.Equal(t, "daily", plan.Period)
			require.Len(t, plan.Days, 1)
			assert.Equal(t, "Fruit Bowl", plan.Days[0].Breakfast.Name)
			assert.Empty(t, f.plans.plans)
		})
	}
}

func TestGenerateStructuredPlan_Unconfigured(t *testing.T) {
	f := newAIFixture(nil)

	_, err := f.svc.GenerateStructuredPlan(context.Background(), f.userID, model.MealPlanRequest{})
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestGenerateRecipe(t *testing.T) {
	f := newAIFixture(&fakeGen{out: "```\nMoong dal cheela\n```"})

	res, err := f.svc.GenerateRecipe(context.Background(), f.userID, model.GenerateRecipeRequest{MealType: "breakfast", Ingredients: []string{"moong"}})
	require.NoError(t, err)
	assert.Equal(t, "Moong dal cheela", res.Recipe)
	assert.Equal(t, "breakfast", res.MealType)

	require.Len(t, f.recipes.recipes, 1)
	r := f.recipes.recipes[0]
	assert.Equal(t, res.ID, r.ID.Hex())
	assert.Equal(t, "Custom Breakfast Recipe", r.Name)
	assert.Equal(t, 30, r.CookingTime)
	assert.True(t, r.IsCustom)
	require.NotNil(t, r.UserID)
	assert.Equal(t, f.userID, *r.UserID)
	assert.Equal(t, []string{}, r.DietaryRestrictions)
	assert.Equal(t, []string{events.RecipeGenerated}, f.pub.subjects)
}

func TestGenerateRecipe_DefaultsAndFailure(t *testing.T) {
	f := newAIFixture(&fakeGen{out: "text"})
	minutes := 45

	res, err := f.svc.GenerateRecipe(context.Background(), f.userID, model.GenerateRecipeRequest{CookingTime: &minutes})
	require.NoError(t, err)
	assert.Equal(t, "any", res.MealType)
	assert.Equal(t, "Custom Any Recipe", f.recipes.recipes[0].Name)
	assert.Equal(t, 45, f.recipes.recipes[0].CookingTime)

	f = newAIFixture(&fakeGen{err: errors.New("boom")})
	_, err = f.svc.GenerateRecipe(context.Background(), f.userID, model.GenerateRecipeRequest{})
	assert.ErrorIs(t, err, ErrAIFailed)
	assert.Empty(t, f.recipes.recipes)
}

func TestGenerateRecipe_Concurrent(t *testing.T) {
	f := newAIFixture(&fakeGen{out: "Lauki soup"})
	mealTypes := []string{"breakfast", "evening snack", "lunch", "dinner"}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers*10)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				req := model.GenerateRecipeRequest{MealType: mealTypes[(i+j)%len(mealTypes)]}
				if _, err := f.svc.GenerateRecipe(context.Background(), f.userID, req); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	require.Len(t, f.recipes.recipes, workers*10)
	for _, r := range f.recipes.recipes {
		assert.Contains(t, []string{
			"Custom Breakfast Recipe", "Custom Evening Snack Recipe", "Custom Lunch Recipe", "Custom Dinner Recipe",
		}, r.Name)
	}
}

func TestSuggestions_JSONArray(t *testing.T) {
	f := newAIFixture(&fakeGen{out: `[
		{"name": "Sprout chaat", "description": "Crunchy", "cooking_time": 10, "ingredients": ["sprouts"], "instructions": ["mix"]},
		{"description": "No name given", "cooking_time": "20"},
		{"name": "3"}, {"name": "4"}, {"name": "5"}, {"name": "6"}, {"name": "7"}
	]`})

	res, err := f.svc.Suggestions(context.Background(), f.userID, model.SuggestionQuery{MealType: "snack"})
	require.NoError(t, err)
	assert.Equal(t, "ai_generated", res.Source)
	require.Equal(t, 6, res.Count)
	require.Len(t, res.Recipes, 6)

	first := res.Recipes[0]
	assert.Equal(t, "ai_recipe_1", first.ID)
	assert.Equal(t, "Sprout chaat", first.Name)
	assert.Equal(t, "snack", first.MealType)
	assert.Equal(t, 10, first.CookingTime)
	assert.Equal(t, []string{"sprouts"}, first.Ingredients)
	assert.True(t, first.IsAIGenerated)

	second := res.Recipes[1]
	assert.Equal(t, "AI Recipe 2", second.Name)
	assert.Equal(t, 20, second.CookingTime)
	assert.Equal(t, []string{}, second.Instructions)
	assert.Equal(t, "ai_recipe_6", res.Recipes[5].ID)
}

func TestSuggestions_BlockFallback(t *testing.T) {
	long := strings.Repeat("a", 250)
	f := newAIFixture(&fakeGen{out: "Lemon rice\nTangy and light\n\n\n" + long})

	res, err := f.svc.Suggestions(context.Background(), f.userID, model.SuggestionQuery{})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 2)

	assert.Equal(t, "Lemon rice", res.Recipes[0].Name)
	assert.Equal(t, "Lemon rice\nTangy and light", res.Recipes[0].Description)
	assert.Equal(t, "any", res.Recipes[0].MealType)
	assert.Equal(t, 30, res.Recipes[0].CookingTime)

	assert.Equal(t, strings.Repeat("a", 60), res.Recipes[1].Name)
	assert.Equal(t, strings.Repeat("a", 200)+"...", res.Recipes[1].Description)
	assert.Equal(t, "ai_recipe_2", res.Recipes[1].ID)
}

func TestSuggestions_Errors(t *testing.T) {
	_, err := newAIFixture(nil).svc.Suggestions(context.Background(), primitive.NewObjectID(), model.SuggestionQuery{})
	assert.ErrorIs(t, err, ErrAIUnavailable)

	f := newAIFixture(&fakeGen{err: errors.New("boom")})
	_, err = f.svc.Suggestions(context.Background(), f.userID, model.SuggestionQuery{})
	assert.ErrorIs(t, err, ErrAIFailed)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newAIFixture(&fakeGen{out: "plan"})
	f.pub.fail = true

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID, model.MealPlanRequest{})
	assert.NoError(t, err)
	assert.Len(t, f.pub.subjects, 1)
}
