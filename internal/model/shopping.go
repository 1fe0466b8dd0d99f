package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shopping item priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ShoppingItem is one line of a shopping list, priced in INR.
type ShoppingItem struct {
	Name           string  `bson:"name" json:"name"`
	Quantity       float64 `bson:"quantity" json:"quantity"`
	Unit           string  `bson:"unit" json:"unit"`
	ApproxPriceINR float64 `bson:"approx_price_inr" json:"approx_price_inr"`
	Category       string  `bson:"category" json:"category"`
	Priority       string  `bson:"priority" json:"priority"`
}

// ShoppingSummary describes the cost of a list against its budget.
type ShoppingSummary struct {
	BudgetINR        int    `bson:"budget_inr" json:"budget_inr"`
	EstimatedCostINR int    `bson:"estimated_cost_inr" json:"estimated_cost_inr"`
	UnderBudget      bool   `bson:"under_budget" json:"under_budget"`
	Note             string `bson:"note" json:"note"`
}

// ShoppingList is a generated list as returned and stored.
type ShoppingList struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"-"`
	Goal      string             `bson:"goal" json:"goal,omitempty"`
	Source    string             `bson:"source" json:"source,omitempty"`
	Summary   ShoppingSummary    `bson:"summary" json:"summary"`
	Items     []ShoppingItem     `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ShoppingRequest asks for a list within a budget.
type ShoppingRequest struct {
	BudgetINR *float64 `json:"budget_inr"`
	Goal      string   `json:"goal"`
}
