package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
)

const msgNoProfileChanges = "No changes made to profile"

// ProfileService reads and updates the caller's own account.
type ProfileService struct {
	users UserStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users UserStore) *ProfileService {
	return &ProfileService{users: users}
}

// Get returns the caller without credentials.
func (s *ProfileService) Get(ctx context.Context, userID primitive.ObjectID) (model.User, error) {
	return loadUser(ctx, s.users, userID)
}

// Update applies the allow-listed fields of req. Profile keys are merged
// one by one; an update that would leave the account unchanged is rejected.
func (s *ProfileService) Update(ctx context.Context, userID primitive.ObjectID, req model.UpdateProfileRequest) error {
	if req.OnboardingCompleted == nil && req.Profile == nil {
		return invalid(msgNoProfileChanges)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	upd := repository.UserUpdate{UpdatedAt: timeNow()}
	changed := false

	if req.OnboardingCompleted != nil && *req.OnboardingCompleted != user.OnboardingCompleted {
		upd.OnboardingCompleted = req.OnboardingCompleted
		changed = true
	}
	if req.Profile != nil {
		merged := req.Profile.MergeInto(user.Profile)
		if !merged.Equal(user.Profile) {
			upd.Profile = &merged
			changed = true
		}
	}

	if !changed {
		return invalid(msgNoProfileChanges)
	}

	if err := s.users.Update(ctx, userID, upd); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// profileOf loads the caller's profile for prompt building. A lookup
// failure yields an empty profile rather than failing the request.
func profileOf(ctx context.Context, users UserStore, userID primitive.ObjectID) model.Profile {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return model.EmptyProfile()
	}
	return user.Profile
}
