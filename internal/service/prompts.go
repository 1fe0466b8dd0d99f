package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

const notSpecified = "Not specified"

func onboardingPrompt(step int, message string, previous map[string]any) string {
	return fmt.Sprintf(`You are a knowledgeable Satvic nutrition assistant helping a user discover their dietary preferences and health goals.

Current step: %d/5
User's message: %s
Previous responses: %s

RESPONSE FORMAT (IMPORTANT):
- Return valid HTML only (no markdown)
- Use <p> paragraphs with proper spacing after periods
- Use <ul> and <li> for bullet points
- Keep under 120 words

Provide warm, encouraging guidance and ask the next appropriate single question.`,
		step, message, jsonOrEmpty(previous))
}

func chatPrompt(p model.Profile, message string) string {
	return fmt.Sprintf(`You are a nutrition and wellness expert assistant.

User's profile: %s
User's question: %s

RESPONSE FORMAT (IMPORTANT):
- Return valid HTML only (no markdown)
- Use <p> paragraphs with normal spacing after periods
- Use <ul> and <li> for bullet points when listing items
- Keep responses practical, encouraging, and under 180 words`,
		jsonOrEmpty(p), message)
}

func freeformMealPlanPrompt(p model.Profile, period, focus string) string {
	return fmt.Sprintf(`Generate a detailed %[1]s meal plan focused on %[2]s nutrition.

User Profile:
%[3]s

Requirements:
- Create a complete %[1]s meal plan with breakfast, lunch, dinner, and 2 snacks per day
- Focus on %[2]s nutrition with whole foods and balanced macronutrients
- Include specific recipe names, ingredients, and preparation methods
- Provide nutritional benefits for each meal
- Make it practical and easy to follow
- Include variety and seasonal ingredients

Format the response as a structured meal plan with clear days and meal times.`,
		period, focus, describeProfile(p))
}

func structuredMealPlanPrompt(p model.Profile, period, focus string) string {
	return fmt.Sprintf(`Create a %s Satvic meal plan focused on %s.
User Profile: %s

Return ONLY valid JSON using this exact schema:
{
  "period": "daily|weekly|monthly",
  "days": [
    {
      "date": "YYYY-MM-DD",
      "breakfast": {"name": "...", "description": "..."},
      "lunch": {"name": "...", "description": "..."},
      "dinner": {"name": "...", "description": "..."}
    }
  ]
}`, period, focus, jsonOrEmpty(p))
}

func recipePrompt(p model.Profile, mealType string, ingredients, restrictions []string, cookingTime int) string {
	available := "Any healthy ingredients"
	if len(ingredients) > 0 {
		available = strings.Join(ingredients, ", ")
	}
	avoid := "None"
	if len(restrictions) > 0 {
		avoid = strings.Join(restrictions, ", ")
	}

	return fmt.Sprintf(`Generate a detailed recipe based on the following requirements:

Meal Type: %s
Available Ingredients: %s
Dietary Restrictions: %s
Cooking Time: %d minutes maximum

User Preferences:
- Dietary Preferences: %s
- Health Goals: %s

Requirements:
- Create a complete recipe with name, description, ingredients list, and step-by-step instructions
- Include nutritional information and health benefits
- Make it practical and achievable within the time limit
- Focus on whole foods and balanced nutrition
- Include serving size and preparation tips

Format the response as a structured recipe with clear sections.`,
		mealType, available, avoid, cookingTime,
		strings.Join(p.DietaryPreferences, ", "), strings.Join(p.HealthGoals, ", "))
}

func suggestionsPrompt(p model.Profile, search, mealType, cookingTime string) string {
	if search == "" {
		search = "healthy quick meals"
	}
	if cookingTime == "" {
		cookingTime = "any"
	}

	return fmt.Sprintf(`Generate %d healthy recipe suggestions.

Query: %s
Preferred meal type: %s
Cooking time preference: %s

User Profile: %s

Return ONLY valid JSON array (no markdown, no backticks). Each item must have:
- name (string)
- description (string, <= 2 sentences)
- meal_type (string: breakfast|lunch|dinner|snack)
- cooking_time (integer minutes)
- ingredients (array of short strings)
- instructions (array of short step strings)`,
		maxSuggestions, search, mealType, cookingTime, jsonOrEmpty(p))
}

const shoppingSchema = `{"summary": {"budget_inr": number, "estimated_cost_inr": number, "under_budget": boolean, "note": string}, ` +
	`"items": [{"name": string, "quantity": number, "unit": string, "approx_price_inr": number, "category": string, "priority": string}]}`

func shoppingPrompt(budget int, goal string) string {
	return fmt.Sprintf(`You are a helpful Indian grocery shopping planner.
Budget (INR): %d
Cooking goal: %s

Plan practical items focusing on whole foods and typical Indian markets.
Prioritize essentials first, then optional items.

OUTPUT STRICTLY AS JSON ONLY (no markdown, no commentary) matching this schema: %s
- Use INR prices realistic for a mid-range Indian city.
- Keep 10-%d items max.
- Use units like kg, g, L, ml, pcs, pack.
- Category examples: produce, grains, dairy, spices, pantry, protein, other.
- priority must be one of: high, medium, low.`,
		budget, goal, shoppingSchema, maxShoppingItems)
}

func describeProfile(p model.Profile) string {
	age, weight, height, level := notSpecified, notSpecified, notSpecified, notSpecified
	if p.Age != nil {
		age = fmt.Sprint(*p.Age)
	}
	if p.Weight != nil {
		weight = fmt.Sprint(*p.Weight)
	}
	if p.Height != nil {
		height = fmt.Sprint(*p.Height)
	}
	if p.ActivityLevel != nil && *p.ActivityLevel != "" {
		level = *p.ActivityLevel
	}

	return fmt.Sprintf(`- Age: %s
- Weight: %s kg
- Height: %s cm
- Activity Level: %s
- Dietary Preferences: %s
- Health Goals: %s`,
		age, weight, height, level,
		strings.Join(p.DietaryPreferences, ", "), strings.Join(p.HealthGoals, ", "))
}

func jsonOrEmpty(v any) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "{}"
	}
	return string(b)
}
