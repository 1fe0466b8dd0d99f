package service

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
)

// TextGenerator turns a prompt into model output. A nil TextGenerator means
// no model is configured.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// UserStore is implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Update(ctx context.Context, id primitive.ObjectID, upd repository.UserUpdate) error
}

// MealPlanStore is implemented by repository.MealPlanRepository.
type MealPlanStore interface {
	Insert(ctx context.Context, plan *model.MealPlan) error
	UpsertDay(ctx context.Context, userID primitive.ObjectID, day model.DayPlan, now time.Time) (*model.MealPlan, error)
	GetByID(ctx context.Context, userID, id primitive.ObjectID) (*model.MealPlan, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, q model.MealPlanQuery) ([]model.MealPlan, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

// RecipeStore is implemented by repository.RecipeRepository.
type RecipeStore interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error)
	List(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, error)
}

// ProgressStore is implemented by repository.ProgressRepository.
type ProgressStore interface {
	Create(ctx context.Context, entry *model.ProgressEntry) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, q model.ProgressQuery) ([]model.ProgressEntry, error)
	Analytics(ctx context.Context, userID primitive.ObjectID, since time.Time) (model.ProgressAnalytics, error)
	WeeklyTrends(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]model.WeeklyTrend, error)
}

// NotificationStore is implemented by repository.NotificationRepository.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.Notification, error)
}

// ShoppingStore is implemented by repository.ShoppingRepository.
type ShoppingStore interface {
	Create(ctx context.Context, list *model.ShoppingList) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.ShoppingList, error)
}

var timeNow = func() time.Time { return time.Now().UTC() }

// publish sends a domain event; failures are logged only.
func publish(ctx context.Context, p events.Publisher, subject string, userID, recordID primitive.ObjectID) {
	if p == nil {
		return
	}
	ev := events.Event{UserID: userID.Hex(), RecordID: recordID.Hex(), OccurredAt: timeNow()}
	if err := p.Publish(ctx, subject, ev); err != nil {
		slog.WarnContext(ctx, "event publish failed", "subject", subject, "error", err)
	}
}
