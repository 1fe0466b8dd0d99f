package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

func decodeUpdate(t *testing.T, raw string) model.UpdateProfileRequest {
	t.Helper()
	var req model.UpdateProfileRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

func TestProfileUpdate_PartialMerge(t *testing.T) {
	users := &fakeUsers{}
	age := 28
	p := model.EmptyProfile()
	p.Age = &age
	id := users.add(model.User{Email: "p@example.com", Profile: p})
	svc := NewProfileService(users)

	err := svc.Update(context.Background(), id, decodeUpdate(t, `{"profile":{"weight":58.5,"health_goals":["digestion"]},"onboarding_completed":true}`))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, got.OnboardingCompleted)
	require.NotNil(t, got.Profile.Age)
	assert.Equal(t, 28, *got.Profile.Age)
	assert.Equal(t, 58.5, *got.Profile.Weight)
	assert.Equal(t, []string{"digestion"}, got.Profile.HealthGoals)
	assert.NotNil(t, got.UpdatedAt)
}

func TestProfileUpdate_NoRecognisedField(t *testing.T) {
	users := &fakeUsers{}
	id := users.add(model.User{Email: "p@example.com", Profile: model.EmptyProfile()})
	svc := NewProfileService(users)

	for _, raw := range []string{
		`{}`,
		`{"email":"evil@example.com","password":"x"}`,
		`{"profile":{"favourite_colour":"blue"}}`,
		`{"onboarding_completed":false}`,
	} {
		err := svc.Update(context.Background(), id, decodeUpdate(t, raw))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, raw)
		assert.Equal(t, "No changes made to profile", verr.Msg)
	}

	assert.Equal(t, "p@example.com", users.users[0].Email)
}

func TestProfileUpdate_UnknownUser(t *testing.T) {
	svc := NewProfileService(&fakeUsers{})

	err := svc.Update(context.Background(), [12]byte{9}, decodeUpdate(t, `{"onboarding_completed":true}`))
	assert.ErrorIs(t, err, ErrUserNotFound)
}
