package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

// NotificationRepository handles reminder persistence.
type NotificationRepository struct {
	coll *mongo.Collection
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(notificationsCollection)}
}

// Create inserts a notification and sets its generated ID.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = id
	}
	return nil
}

// ListByUser returns the newest notifications first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}

	out := []model.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
