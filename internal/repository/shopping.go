package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

// ShoppingRepository keeps a history of generated shopping lists.
type ShoppingRepository struct {
	coll *mongo.Collection
}

// NewShoppingRepository creates a new ShoppingRepository.
func NewShoppingRepository(db *mongo.Database) *ShoppingRepository {
	return &ShoppingRepository{coll: db.Collection(shoppingCollection)}
}

// Create stores a list and sets its generated ID.
func (r *ShoppingRepository) Create(ctx context.Context, list *model.ShoppingList) error {
	res, err := r.coll.InsertOne(ctx, list)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		list.ID = id
	}
	return nil
}

// ListByUser returns the user's most recent lists.
func (r *ShoppingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.ShoppingList, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}

	out := []model.ShoppingList{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
