package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

const (
	maxShoppingItems   = 18
	shoppingHistoryLen = 10
	budgetOvershoot    = 1.15
	fallbackNote       = "Fallback estimate based on common Indian groceries."
)

// Base staples. High and medium lines total 350 INR so that a 500 INR goal
// with one keyword line still fits under the overshoot cap.
var baseShoppingItems = []model.ShoppingItem{
	{Name: "Atta (whole wheat flour)", Quantity: 1, Unit: "kg", ApproxPriceINR: 60, Category: "grains", Priority: model.PriorityHigh},
	{Name: "Rice", Quantity: 1, Unit: "kg", ApproxPriceINR: 90, Category: "grains", Priority: model.PriorityHigh},
	{Name: "Dal (moong/toor)", Quantity: 500, Unit: "g", ApproxPriceINR: 75, Category: "protein", Priority: model.PriorityHigh},
	{Name: "Tomato", Quantity: 1, Unit: "kg", ApproxPriceINR: 50, Category: "produce", Priority: model.PriorityHigh},
	{Name: "Potato", Quantity: 1, Unit: "kg", ApproxPriceINR: 35, Category: "produce", Priority: model.PriorityMedium},
	{Name: "Leafy greens", Quantity: 500, Unit: "g", ApproxPriceINR: 40, Category: "produce", Priority: model.PriorityMedium},
	{Name: "Milk/Curd", Quantity: 1, Unit: "L", ApproxPriceINR: 60, Category: "dairy", Priority: model.PriorityLow},
	{Name: "Masala basics", Quantity: 1, Unit: "pack", ApproxPriceINR: 100, Category: "spices", Priority: model.PriorityLow},
	{Name: "Cooking oil", Quantity: 1, Unit: "L", ApproxPriceINR: 160, Category: "pantry", Priority: model.PriorityLow},
	{Name: "Seasonal fruits", Quantity: 1, Unit: "kg", ApproxPriceINR: 90, Category: "produce", Priority: model.PriorityLow},
}

type keywordItems struct {
	keywords []string
	items    []model.ShoppingItem
}

var goalShoppingItems = []keywordItems{
	{
		keywords: []string{"paneer"},
		items: []model.ShoppingItem{
			{Name: "Paneer", Quantity: 500, Unit: "g", ApproxPriceINR: 200, Category: "dairy", Priority: model.PriorityHigh},
		},
	},
	{
		keywords: []string{"roti", "chapati"},
		items: []model.ShoppingItem{
			{Name: "Ghee (optional)", Quantity: 200, Unit: "g", ApproxPriceINR: 150, Category: "pantry", Priority: model.PriorityLow},
		},
	},
	{
		keywords: []string{"tikka", "grill", "marinate"},
		items: []model.ShoppingItem{
			{Name: "Yogurt/Curd (for marinade)", Quantity: 500, Unit: "g", ApproxPriceINR: 60, Category: "dairy", Priority: model.PriorityMedium},
			{Name: "Spice mix (tikka masala)", Quantity: 1, Unit: "pack", ApproxPriceINR: 80, Category: "spices", Priority: model.PriorityMedium},
		},
	},
}

// ShoppingService generates budget-bound grocery lists.
type ShoppingService struct {
	gen   TextGenerator
	lists ShoppingStore
}

// NewShoppingService creates a new ShoppingService. gen may be nil, in which
// case every list comes from the rule-based generator.
func NewShoppingService(gen TextGenerator, lists ShoppingStore) *ShoppingService {
	return &ShoppingService{gen: gen, lists: lists}
}

// Generate plans a list for req. Any model failure falls back to the
// rule-based generator; the estimate is always recomputed from the items.
func (s *ShoppingService) Generate(ctx context.Context, userID primitive.ObjectID, req model.ShoppingRequest) (model.ShoppingList, error) {
	if req.BudgetINR == nil || *req.BudgetINR <= 0 || math.IsNaN(*req.BudgetINR) || math.IsInf(*req.BudgetINR, 0) {
		return model.ShoppingList{}, invalid("budget_inr must be a positive number")
	}
	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		return model.ShoppingList{}, invalid("goal is required")
	}
	budget := *req.BudgetINR

	var items []model.ShoppingItem
	note, source := "", "ai"
	if s.gen != nil {
		out, err := s.gen.Generate(ctx, shoppingPrompt(int(budget), goal))
		if err != nil {
			slog.WarnContext(ctx, "shopping list generation failed", "error", err)
		} else if parsed, err := parseShoppingResponse(out); err != nil {
			slog.WarnContext(ctx, "unparseable shopping list output", "error", err)
		} else {
			items, note = parsed.items, parsed.note
		}
	}
	if len(items) == 0 {
		items = fallbackShoppingItems(goal, budget)
		note, source = fallbackNote, "fallback"
	}

	estimate := 0.0
	for _, it := range items {
		estimate += it.ApproxPriceINR
	}

	list := model.ShoppingList{
		UserID: userID,
		Goal:   goal,
		Source: source,
		Summary: model.ShoppingSummary{
			BudgetINR:        int(budget),
			EstimatedCostINR: int(estimate),
			UnderBudget:      estimate <= budget,
			Note:             note,
		},
		Items:     items,
		CreatedAt: timeNow(),
	}

	if s.lists != nil {
		if err := s.lists.Create(ctx, &list); err != nil {
			slog.WarnContext(ctx, "storing shopping list failed", "user_id", userID.Hex(), "error", err)
		}
	}
	return list, nil
}

// History returns the caller's most recent lists.
func (s *ShoppingService) History(ctx context.Context, userID primitive.ObjectID) ([]model.ShoppingList, error) {
	return s.lists.ListByUser(ctx, userID, shoppingHistoryLen)
}

type parsedShopping struct {
	items []model.ShoppingItem
	note  string
}

func parseShoppingResponse(out string) (parsedShopping, error) {
	var raw struct {
		Summary map[string]any   `json:"summary"`
		Items   []map[string]any `json:"items"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(out)), &raw); err != nil {
		return parsedShopping{}, err
	}

	items := make([]model.ShoppingItem, 0, min(len(raw.Items), maxShoppingItems))
	for _, it := range raw.Items {
		if len(items) == maxShoppingItems {
			break
		}
		items = append(items, normalizeShoppingItem(it))
	}
	return parsedShopping{items: items, note: stringField(raw.Summary, "note")}, nil
}

func normalizeShoppingItem(m map[string]any) model.ShoppingItem {
	qty, ok := floatField(m, "quantity")
	if !ok || qty <= 0 {
		qty = 1
	}
	price, ok := floatField(m, "approx_price_inr")
	if !ok || price < 0 {
		price = 0
	}
	priority := strings.ToLower(stringField(m, "priority"))
	switch priority {
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
	default:
		priority = model.PriorityMedium
	}

	return model.ShoppingItem{
		Name:           defaultString(stringField(m, "name"), "Item"),
		Quantity:       qty,
		Unit:           defaultString(stringField(m, "unit"), "pcs"),
		ApproxPriceINR: price,
		Category:       defaultString(strings.ToLower(stringField(m, "category")), "other"),
		Priority:       priority,
	}
}

func priorityRank(p string) int {
	switch p {
	case model.PriorityHigh:
		return 0
	case model.PriorityMedium:
		return 1
	}
	return 2
}

// fallbackShoppingItems builds a list without the model. Goal keyword lines
// come first, then the base staples, stably ordered high to low. High and
// medium lines are always taken; a low line only if the running total stays
// within the overshoot cap.
func fallbackShoppingItems(goal string, budget float64) []model.ShoppingItem {
	goal = strings.ToLower(goal)

	var candidates []model.ShoppingItem
	for _, kw := range goalShoppingItems {
		if slices.ContainsFunc(kw.keywords, func(k string) bool { return strings.Contains(goal, k) }) {
			candidates = append(candidates, kw.items...)
		}
	}
	candidates = append(candidates, baseShoppingItems...)

	slices.SortStableFunc(candidates, func(a, b model.ShoppingItem) int {
		return priorityRank(a.Priority) - priorityRank(b.Priority)
	})

	limit := budget * budgetOvershoot
	total := 0.0
	out := make([]model.ShoppingItem, 0, len(candidates))
	for _, it := range candidates {
		if it.Priority == model.PriorityLow && total+it.ApproxPriceINR > limit {
			continue
		}
		out = append(out, it)
		total += it.ApproxPriceINR
	}
	return out
}
