package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

var ErrMealPlanNotFound = errors.New("meal plan not found")

// MealPlanRepository stores both meal plan kinds in one collection.
type MealPlanRepository struct {
	coll *mongo.Collection
}

// NewMealPlanRepository creates a new MealPlanRepository.
func NewMealPlanRepository(db *mongo.Database) *MealPlanRepository {
	return &MealPlanRepository{coll: db.Collection(mealPlansCollection)}
}

// Insert stores a new plan and sets its generated ID.
func (r *MealPlanRepository) Insert(ctx context.Context, plan *model.MealPlan) error {
	res, err := r.coll.InsertOne(ctx, plan)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		plan.ID = id
	}
	return nil
}

// UpsertDay creates or replaces the structured plan for (userID, day.Date)
// and returns the stored document. An upsert that loses an insert race to
// the unique day index is retried once as an update.
func (r *MealPlanRepository) UpsertDay(ctx context.Context, userID primitive.ObjectID, day model.DayPlan, now time.Time) (*model.MealPlan, error) {
	plan, err := r.upsertDay(ctx, userID, day, now)
	if mongo.IsDuplicateKeyError(err) {
		plan, err = r.upsertDay(ctx, userID, day, now)
	}
	return plan, err
}

func (r *MealPlanRepository) upsertDay(ctx context.Context, userID primitive.ObjectID, day model.DayPlan, now time.Time) (*model.MealPlan, error) {
	filter := bson.M{
		"user_id":         userID,
		"kind":            model.MealPlanStructured,
		"structured.date": day.Date,
	}
	update := bson.M{
		"$set": bson.M{
			"structured": day,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	plan := &model.MealPlan{}
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByID retrieves a plan owned by userID.
func (r *MealPlanRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*model.MealPlan, error) {
	plan := &model.MealPlan{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// ListByUser returns the user's plans, newest first.
func (r *MealPlanRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, q model.MealPlanQuery) ([]model.MealPlan, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, mealPlanFilter(userID, q), opts)
	if err != nil {
		return nil, err
	}

	plans := []model.MealPlan{}
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Delete removes a plan only if userID owns it.
func (r *MealPlanRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMealPlanNotFound
	}
	return nil
}

// mealPlanFilter scopes to the owner; a date range narrows to structured days.
func mealPlanFilter(userID primitive.ObjectID, q model.MealPlanQuery) bson.M {
	filter := bson.M{"user_id": userID}
	if q.From != nil || q.To != nil {
		filter["kind"] = model.MealPlanStructured
		filter["structured.date"] = dateRange(q.From, q.To)
	}
	return filter
}
