package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
)

type fakeUsers struct {
	users []*model.User
	// hideLookups makes GetByEmail miss, simulating a registration race.
	hideLookups bool
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.hideLookups {
		return nil, repository.ErrUserNotFound
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.LastLogin = &at
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUsers) Update(_ context.Context, id primitive.ObjectID, upd repository.UserUpdate) error {
	for _, u := range f.users {
		if u.ID == id {
			if upd.OnboardingCompleted != nil {
				u.OnboardingCompleted = *upd.OnboardingCompleted
			}
			if upd.Profile != nil {
				u.Profile = *upd.Profile
			}
			at := upd.UpdatedAt
			u.UpdatedAt = &at
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUsers) add(u model.User) primitive.ObjectID {
	u.ID = primitive.NewObjectID()
	f.users = append(f.users, &u)
	return u.ID
}

type fakeGen struct {
	mu      sync.Mutex
	out     string
	err     error
	prompts []string
}

func (g *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.out, g.err
}

type fakePlans struct {
	plans []*model.MealPlan
}

func (f *fakePlans) Insert(_ context.Context, p *model.MealPlan) error {
	p.ID = primitive.NewObjectID()
	cp := *p
	f.plans = append(f.plans, &cp)
	return nil
}

func (f *fakePlans) UpsertDay(_ context.Context, userID primitive.ObjectID, day model.DayPlan, now time.Time) (*model.MealPlan, error) {
	for _, p := range f.plans {
		if p.UserID == userID && p.Kind == model.MealPlanStructured && p.Structured.Date.Equal(day.Date) {
			d := day
			p.Structured = &d
			p.UpdatedAt = now
			cp := *p
			return &cp, nil
		}
	}
	d := day
	p := &model.MealPlan{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Kind:       model.MealPlanStructured,
		Structured: &d,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.plans = append(f.plans, p)
	cp := *p
	return &cp, nil
}

func (f *fakePlans) GetByID(_ context.Context, userID, id primitive.ObjectID) (*model.MealPlan, error) {
	for _, p := range f.plans {
		if p.ID == id && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrMealPlanNotFound
}

func (f *fakePlans) ListByUser(_ context.Context, userID primitive.ObjectID, q model.MealPlanQuery) ([]model.MealPlan, error) {
	out := []model.MealPlan{}
	for i := len(f.plans) - 1; i >= 0 && len(out) < q.Limit; i-- {
		p := f.plans[i]
		if p.UserID != userID {
			continue
		}
		if q.From != nil || q.To != nil {
			if p.Kind != model.MealPlanStructured {
				continue
			}
			if q.From != nil && p.Structured.Date.Before(*q.From) {
				continue
			}
			if q.To != nil && p.Structured.Date.After(*q.To) {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlans) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	for i, p := range f.plans {
		if p.ID == id && p.UserID == userID {
			f.plans = slices.Delete(f.plans, i, i+1)
			return nil
		}
	}
	return repository.ErrMealPlanNotFound
}

type fakeRecipes struct {
	mu      sync.Mutex
	recipes []*model.Recipe
}

func (f *fakeRecipes) Create(_ context.Context, r *model.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = primitive.NewObjectID()
	cp := *r
	f.recipes = append(f.recipes, &cp)
	return nil
}

func (f *fakeRecipes) GetByID(_ context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrRecipeNotFound
}

func (f *fakeRecipes) List(_ context.Context, q model.RecipeQuery) ([]model.Recipe, error) {
	out := []model.Recipe{}
	needle := strings.ToLower(q.Search)
	bucket, hasBucket := model.CookingTimeBucket(q.CookingTime)
	for _, r := range f.recipes {
		if len(out) == q.Limit {
			break
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.Name+" "+r.Description+" "+strings.Join(r.Ingredients, " ")), needle) {
			continue
		}
		if q.MealType != "" && r.MealType != q.MealType {
			continue
		}
		if hasBucket && !inBucket(bucket, r.CookingTime) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

type fakeProgress struct {
	entries []model.ProgressEntry
	since   time.Time
}

func (f *fakeProgress) Create(_ context.Context, e *model.ProgressEntry) error {
	e.ID = primitive.NewObjectID()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeProgress) ListByUser(_ context.Context, userID primitive.ObjectID, q model.ProgressQuery) ([]model.ProgressEntry, error) {
	out := []model.ProgressEntry{}
	for _, e := range f.entries {
		if e.UserID == userID && len(out) < q.Limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeProgress) window(userID primitive.ObjectID, since time.Time) []model.ProgressEntry {
	f.since = since
	var out []model.ProgressEntry
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeProgress) Analytics(_ context.Context, userID primitive.ObjectID, since time.Time) (model.ProgressAnalytics, error) {
	return summarize(f.window(userID, since)), nil
}

func (f *fakeProgress) WeeklyTrends(_ context.Context, userID primitive.ObjectID, since time.Time) ([]model.WeeklyTrend, error) {
	if len(f.window(userID, since)) == 0 {
		return nil, nil
	}
	return []model.WeeklyTrend{{Year: 2025, Week: 1}}, nil
}

type fakeNotifications struct {
	items []model.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *model.Notification) error {
	n.ID = primitive.NewObjectID()
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]model.Notification, error) {
	out := []model.Notification{}
	for _, n := range f.items {
		if n.UserID == userID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeShopping struct {
	lists []model.ShoppingList
	err   error
}

func (f *fakeShopping) Create(_ context.Context, l *model.ShoppingList) error {
	if f.err != nil {
		return f.err
	}
	l.ID = primitive.NewObjectID()
	f.lists = append(f.lists, *l)
	return nil
}

func (f *fakeShopping) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]model.ShoppingList, error) {
	out := []model.ShoppingList{}
	for _, l := range f.lists {
		if l.UserID == userID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	fail     bool
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	if p.fail {
		return errors.New("broker down")
	}
	return nil
}

func inBucket(r model.CookingTimeRange, minutes int) bool {
	if r.Min >= 0 && minutes < r.Min {
		return false
	}
	return r.Max < 0 || minutes < r.Max
}

// summarize mirrors the store-side averaging pipeline.
func summarize(entries []model.ProgressEntry) model.ProgressAnalytics {
	if len(entries) == 0 {
		return model.ProgressAnalytics{}
	}
	var weight, energy, mood, sleep, water, exercise float64
	for _, e := range entries {
		weight += e.Weight
		energy += e.EnergyLevel
		mood += e.Mood
		sleep += e.SleepQuality
		water += e.WaterIntake
		exercise += e.ExerciseMinutes
	}
	n := float64(len(entries))
	avg := func(sum float64) *float64 {
		v := sum / n
		return &v
	}
	return model.ProgressAnalytics{
		AvgWeight:    avg(weight),
		AvgEnergy:    avg(energy),
		AvgMood:      avg(mood),
		AvgSleep:     avg(sleep),
		AvgWater:     avg(water),
		AvgExercise:  avg(exercise),
		TotalEntries: len(entries),
	}
}
