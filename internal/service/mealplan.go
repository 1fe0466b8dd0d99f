package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
)

const mealPlanHistoryLen = 10

// MealPlanService manages the caller's stored meal plans.
type MealPlanService struct {
	plans  MealPlanStore
	events events.Publisher
}

// NewMealPlanService creates a new MealPlanService.
func NewMealPlanService(plans MealPlanStore, pub events.Publisher) *MealPlanService {
	return &MealPlanService{plans: plans, events: pub}
}

// List returns the caller's newest plans. Optional dates restrict the
// result to structured days in that range.
func (s *MealPlanService) List(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]model.MealPlan, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.plans.ListByUser(ctx, userID, model.MealPlanQuery{From: from, To: to, Limit: mealPlanHistoryLen})
}

// Save creates or replaces the caller's plan for one calendar day.
func (s *MealPlanService) Save(ctx context.Context, userID primitive.ObjectID, req model.SaveDayPlanRequest) (*model.MealPlan, error) {
	if strings.TrimSpace(req.Date) == "" {
		return nil, invalid("date is required (ISO string)")
	}
	date, err := parseISOTime(req.Date)
	if err != nil {
		return nil, invalid("Invalid date format")
	}

	day := model.DayPlan{
		Date:      date.Truncate(24 * time.Hour),
		Breakfast: req.Breakfast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
		Snacks:    req.Snacks,
		FocusArea: req.FocusArea,
	}

	saved, err := s.plans.UpsertDay(ctx, userID, day, timeNow())
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, events.MealPlanSaved, userID, saved.ID)
	return saved, nil
}

// Get returns one of the caller's plans.
func (s *MealPlanService) Get(ctx context.Context, userID primitive.ObjectID, id string) (*model.MealPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMealPlanNotFound
	}
	plan, err := s.plans.GetByID(ctx, userID, oid)
	if errors.Is(err, repository.ErrMealPlanNotFound) {
		return nil, ErrMealPlanNotFound
	}
	return plan, err
}

// Delete removes one of the caller's plans. Plans owned by someone else are
// reported as missing.
func (s *MealPlanService) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrMealPlanNotFound
	}
	err = s.plans.Delete(ctx, userID, oid)
	if errors.Is(err, repository.ErrMealPlanNotFound) {
		return ErrMealPlanNotFound
	}
	return err
}
