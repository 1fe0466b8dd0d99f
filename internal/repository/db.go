package repository

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

// Collection names.
const (
	usersCollection         = "users"
	mealPlansCollection     = "meal_plans"
	recipesCollection       = "recipes"
	progressCollection      = "progress"
	notificationsCollection = "notifications"
	shoppingCollection      = "shopping_lists"
)

const indexTimeout = 30 * time.Second

// Store owns the process-wide MongoDB client and database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB at uri and selects database. A failed ping is
// logged but not fatal so the API can come up before the database does.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMaxConnIdleTime(5*time.Minute))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		slog.Warn("database ping failed, continuing without DB", "error", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Database returns the selected database.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// email index is what actually guarantees one account per address.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for name, models := range indexModels() {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		mealPlansCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "structured.date", Value: 1}},
				Options: options.Index().
					SetName("user_structured_day_unique").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"kind": model.MealPlanStructured}),
			},
		},
		recipesCollection: {
			{Keys: bson.D{{Key: "meal_type", Value: 1}, {Key: "cooking_time", Value: 1}}},
		},
		progressCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		shoppingCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
}

// EnsureIndexesWithRetry calls EnsureIndexes until it succeeds or ctx is
// done. Until then one account per email is not enforced by the store.
func (s *Store) EnsureIndexesWithRetry(ctx context.Context, interval time.Duration) {
	_ = retryIndexes(ctx, interval, s.EnsureIndexes)
}

func retryIndexes(ctx context.Context, interval time.Duration, create func(context.Context) error) error {
	for attempt := 1; ; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, indexTimeout)
		err := create(attemptCtx)
		cancel()
		if err == nil {
			slog.Info("database indexes ready", "attempts", attempt)
			return nil
		}
		slog.Error("creating indexes failed, unique constraints not enforced", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func dateRange(from, to *time.Time) bson.M {
	r := bson.M{}
	if from != nil {
		r["$gte"] = *from
	}
	if to != nil {
		r["$lte"] = *to
	}
	return r
}
