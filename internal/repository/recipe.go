package repository

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository handles the shared recipe catalogue.
type RecipeRepository struct {
	coll *mongo.Collection
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{coll: db.Collection(recipesCollection)}
}

// Create inserts a recipe and sets its generated ID.
func (r *RecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	res, err := r.coll.InsertOne(ctx, recipe)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = id
	}
	return nil
}

// GetByID retrieves a single recipe.
func (r *RecipeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	recipe := &model.Recipe{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(recipe); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// List returns recipes matching q, at most q.Limit of them.
func (r *RecipeRepository) List(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, error) {
	cur, err := r.coll.Find(ctx, recipeFilter(q), options.Find().SetLimit(int64(q.Limit)))
	if err != nil {
		return nil, err
	}

	recipes := []model.Recipe{}
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func recipeFilter(q model.RecipeQuery) bson.M {
	filter := bson.M{}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"ingredients": pattern},
		}
	}

	if q.MealType != "" {
		filter["meal_type"] = q.MealType
	}

	if bucket, ok := model.CookingTimeBucket(q.CookingTime); ok {
		bounds := bson.M{}
		if bucket.Min >= 0 {
			bounds["$gte"] = bucket.Min
		}
		if bucket.Max >= 0 {
			bounds["$lt"] = bucket.Max
		}
		filter["cooking_time"] = bounds
	}

	return filter
}
