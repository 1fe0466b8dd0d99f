package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

// ProgressRepository handles the append-only progress log.
type ProgressRepository struct {
	coll *mongo.Collection
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{coll: db.Collection(progressCollection)}
}

// Create appends an entry and sets its generated ID.
func (r *ProgressRepository) Create(ctx context.Context, entry *model.ProgressEntry) error {
	res, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

// ListByUser returns entries newest first.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, q model.ProgressQuery) ([]model.ProgressEntry, error) {
	filter := bson.M{"user_id": userID}
	if q.From != nil || q.To != nil {
		filter["date"] = dateRange(q.From, q.To)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	entries := []model.ProgressEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Analytics averages every metric over entries dated at or after since.
// No matching entries yields the zero value.
func (r *ProgressRepository) Analytics(ctx context.Context, userID primitive.ObjectID, since time.Time) (model.ProgressAnalytics, error) {
	cur, err := r.coll.Aggregate(ctx, analyticsPipeline(userID, since))
	if err != nil {
		return model.ProgressAnalytics{}, err
	}
	defer cur.Close(ctx)

	var out model.ProgressAnalytics
	if cur.Next(ctx) {
		if err := cur.Decode(&out); err != nil {
			return model.ProgressAnalytics{}, err
		}
	}
	return out, cur.Err()
}

// WeeklyTrends buckets the same window by ISO week, oldest first.
func (r *ProgressRepository) WeeklyTrends(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]model.WeeklyTrend, error) {
	cur, err := r.coll.Aggregate(ctx, trendsPipeline(userID, since))
	if err != nil {
		return nil, err
	}

	trends := []model.WeeklyTrend{}
	if err := cur.All(ctx, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

func windowMatch(userID primitive.ObjectID, since time.Time) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": since},
	}}}
}

func analyticsPipeline(userID primitive.ObjectID, since time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		windowMatch(userID, since),
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"avg_weight":    bson.M{"$avg": "$weight"},
			"avg_energy":    bson.M{"$avg": "$energy_level"},
			"avg_mood":      bson.M{"$avg": "$mood"},
			"avg_sleep":     bson.M{"$avg": "$sleep_quality"},
			"avg_water":     bson.M{"$avg": "$water_intake"},
			"avg_exercise":  bson.M{"$avg": "$exercise_minutes"},
			"total_entries": bson.M{"$sum": 1},
		}}},
	}
}

func trendsPipeline(userID primitive.ObjectID, since time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		windowMatch(userID, since),
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year": bson.M{"$isoWeekYear": "$date"},
				"week": bson.M{"$isoWeek": "$date"},
			},
			"avg_energy": bson.M{"$avg": "$energy_level"},
			"avg_mood":   bson.M{"$avg": "$mood"},
			"avg_sleep":  bson.M{"$avg": "$sleep_quality"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.week", Value: 1}}}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"year":       "$_id.year",
			"week":       "$_id.week",
			"avg_energy": 1,
			"avg_mood":   1,
			"avg_sleep":  1,
		}}},
	}
}
