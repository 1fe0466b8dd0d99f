package handler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
)

type memUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[primitive.ObjectID]model.User{}}
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) TouchLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.LastLogin = &at
	m.users[id] = u
	return nil
}

func (m *memUsers) Update(_ context.Context, id primitive.ObjectID, upd repository.UserUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if upd.OnboardingCompleted != nil {
		u.OnboardingCompleted = *upd.OnboardingCompleted
	}
	if upd.Profile != nil {
		u.Profile = *upd.Profile
	}
	m.users[id] = u
	return nil
}

type memPlans struct {
	mu    sync.Mutex
	plans []model.MealPlan
}

func (m *memPlans) Insert(_ context.Context, p *model.MealPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.plans = append(m.plans, *p)
	return nil
}

func (m *memPlans) UpsertDay(_ context.Context, userID primitive.ObjectID, day model.DayPlan, now time.Time) (*model.MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.plans {
		if p.UserID == userID && p.Structured != nil && p.Structured.Date.Equal(day.Date) {
			m.plans[i].Structured = &day
			m.plans[i].UpdatedAt = now
			out := m.plans[i]
			return &out, nil
		}
	}
	p := model.MealPlan{ID: primitive.NewObjectID(), UserID: userID, Kind: model.MealPlanStructured, Structured: &day, CreatedAt: now, UpdatedAt: now}
	m.plans = append(m.plans, p)
	return &p, nil
}

func (m *memPlans) GetByID(_ context.Context, userID, id primitive.ObjectID) (*model.MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.plans {
		if p.ID == id && p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repository.ErrMealPlanNotFound
}

func (m *memPlans) ListByUser(_ context.Context, userID primitive.ObjectID, q model.MealPlanQuery) ([]model.MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.MealPlan{}
	for _, p := range m.plans {
		if p.UserID == userID && len(out) < q.Limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPlans) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.plans {
		if p.ID == id && p.UserID == userID {
			m.plans = append(m.plans[:i], m.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrMealPlanNotFound
}

type memRecipes struct {
	recipes []model.Recipe
	err     error
}

func (m *memRecipes) Create(_ context.Context, r *model.Recipe) error {
	r.ID = primitive.NewObjectID()
	m.recipes = append(m.recipes, *r)
	return nil
}

func (m *memRecipes) GetByID(_ context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	for _, r := range m.recipes {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, repository.ErrRecipeNotFound
}

func (m *memRecipes) List(_ context.Context, q model.RecipeQuery) ([]model.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recipes[:min(len(m.recipes), q.Limit)], nil
}

type memProgress struct {
	entries []model.ProgressEntry
}

func (m *memProgress) Create(_ context.Context, e *model.ProgressEntry) error {
	e.ID = primitive.NewObjectID()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memProgress) ListByUser(_ context.Context, userID primitive.ObjectID, q model.ProgressQuery) ([]model.ProgressEntry, error) {
	out := []model.ProgressEntry{}
	for _, e := range m.entries {
		if e.UserID == userID && len(out) < q.Limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memProgress) Analytics(_ context.Context, userID primitive.ObjectID, since time.Time) (model.ProgressAnalytics, error) {
	var out model.ProgressAnalytics
	for _, e := range m.entries {
		if e.UserID == userID && !e.Date.Before(since) {
			out.TotalEntries++
		}
	}
	return out, nil
}

func (m *memProgress) WeeklyTrends(context.Context, primitive.ObjectID, time.Time) ([]model.WeeklyTrend, error) {
	return nil, nil
}

type memNotifications struct {
	items []model.Notification
}

func (m *memNotifications) Create(_ context.Context, n *model.Notification) error {
	n.ID = primitive.NewObjectID()
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]model.Notification, error) {
	out := []model.Notification{}
	for _, n := range m.items {
		if n.UserID == userID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

type memShopping struct {
	lists []model.ShoppingList
}

func (m *memShopping) Create(_ context.Context, l *model.ShoppingList) error {
	l.ID = primitive.NewObjectID()
	m.lists = append(m.lists, *l)
	return nil
}

func (m *memShopping) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]model.ShoppingList, error) {
	out := []model.ShoppingList{}
	for _, l := range m.lists {
		if l.UserID == userID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

var errStoreDown = errors.New("store unavailable")
