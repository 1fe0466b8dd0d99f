package model

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the users collection. Credential fields never leave
// the process: they are tagged out of JSON and cleared by Public.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password,omitempty" json:"-"`
	PasswordHash        string             `bson:"password_hash,omitempty" json:"-"`
	OnboardingCompleted bool               `bson:"onboarding_completed" json:"onboarding_completed"`
	Profile             Profile            `bson:"profile" json:"profile"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	LastLogin           *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
}

// Public returns a copy of the user with credential material removed.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

// Profile holds the personalisation data embedded in every prompt.
type Profile struct {
	Age                *int     `bson:"age" json:"age"`
	Weight             *float64 `bson:"weight" json:"weight"`
	Height             *float64 `bson:"height" json:"height"`
	ActivityLevel      *string  `bson:"activity_level" json:"activity_level"`
	DietaryPreferences []string `bson:"dietary_preferences" json:"dietary_preferences"`
	HealthGoals        []string `bson:"health_goals" json:"health_goals"`
}

// EmptyProfile is the profile every new account starts with.
func EmptyProfile() Profile {
	return Profile{
		DietaryPreferences: []string{},
		HealthGoals:        []string{},
	}
}

// Equal reports whether two profiles hold the same values.
func (p Profile) Equal(o Profile) bool {
	return ptrEqual(p.Age, o.Age) &&
		ptrEqual(p.Weight, o.Weight) &&
		ptrEqual(p.Height, o.Height) &&
		ptrEqual(p.ActivityLevel, o.ActivityLevel) &&
		slices.Equal(p.DietaryPreferences, o.DietaryPreferences) &&
		slices.Equal(p.HealthGoals, o.HealthGoals)
}

// ProfileUpdate is a partial profile: nil fields keep the stored value.
// Keys outside this set are dropped by the JSON decoder.
type ProfileUpdate struct {
	Age                *int      `json:"age"`
	Weight             *float64  `json:"weight"`
	Height             *float64  `json:"height"`
	ActivityLevel      *string   `json:"activity_level"`
	DietaryPreferences *[]string `json:"dietary_preferences"`
	HealthGoals        *[]string `json:"health_goals"`
}

// MergeInto applies the update on top of p and returns the result.
func (u ProfileUpdate) MergeInto(p Profile) Profile {
	if u.Age != nil {
		p.Age = u.Age
	}
	if u.Weight != nil {
		p.Weight = u.Weight
	}
	if u.Height != nil {
		p.Height = u.Height
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = u.ActivityLevel
	}
	if u.DietaryPreferences != nil {
		p.DietaryPreferences = slices.Clone(*u.DietaryPreferences)
	}
	if u.HealthGoals != nil {
		p.HealthGoals = slices.Clone(*u.HealthGoals)
	}
	return p
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a signed token and the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileRequest lists the only top-level fields a caller may change.
type UpdateProfileRequest struct {
	OnboardingCompleted *bool          `json:"onboarding_completed"`
	Profile             *ProfileUpdate `json:"profile"`
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
