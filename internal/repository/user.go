package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserUpdate carries the fields a profile update may replace.
type UserUpdate struct {
	OnboardingCompleted *bool
	Profile             *model.Profile
	UpdatedAt           time.Time
}

// UserRepository handles user persistence operations.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// GetByEmail retrieves a user by their normalised email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// TouchLastLogin records a successful login.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

// Update applies a profile update.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": userUpdateDoc(upd)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	user := &model.User{}
	if err := r.coll.FindOne(ctx, filter).Decode(user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func userUpdateDoc(upd UserUpdate) bson.M {
	set := bson.M{"updated_at": upd.UpdatedAt}
	if upd.OnboardingCompleted != nil {
		set["onboarding_completed"] = *upd.OnboardingCompleted
	}
	if upd.Profile != nil {
		set["profile"] = *upd.Profile
	}
	return set
}
