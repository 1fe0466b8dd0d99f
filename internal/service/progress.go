package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

const (
	defaultProgressLimit = 30
	maxProgressLimit     = 90
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 90
)

// ProgressService records check-ins and summarises them.
type ProgressService struct {
	progress ProgressStore
	events   events.Publisher
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progress ProgressStore, pub events.Publisher) *ProgressService {
	return &ProgressService{progress: progress, events: pub}
}

// List returns the caller's entries, newest first.
func (s *ProgressService) List(ctx context.Context, userID primitive.ObjectID, limit int, startDate, endDate string) ([]model.ProgressEntry, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.progress.ListByUser(ctx, userID, model.ProgressQuery{
		From:  from,
		To:    to,
		Limit: clampLimit(limit, defaultProgressLimit, maxProgressLimit),
	})
}

// Record appends a check-in and returns its ID.
func (s *ProgressService) Record(ctx context.Context, userID primitive.ObjectID, req model.ProgressRequest) (primitive.ObjectID, error) {
	if req.Date == nil || req.Weight == nil || req.EnergyLevel == nil || req.Mood == nil || req.SleepQuality == nil {
		return primitive.NilObjectID, invalid("Missing required progress fields")
	}
	date, err := parseISOTime(*req.Date)
	if err != nil {
		return primitive.NilObjectID, invalid("Invalid date format")
	}

	entry := &model.ProgressEntry{
		UserID:          userID,
		Date:            date,
		Weight:          *req.Weight,
		EnergyLevel:     *req.EnergyLevel,
		Mood:            *req.Mood,
		SleepQuality:    *req.SleepQuality,
		WaterIntake:     valueOr(req.WaterIntake, 0),
		ExerciseMinutes: valueOr(req.ExerciseMinutes, 0),
		Notes:           valueOr(req.Notes, ""),
		CreatedAt:       timeNow(),
	}
	if err := s.progress.Create(ctx, entry); err != nil {
		return primitive.NilObjectID, err
	}
	publish(ctx, s.events, events.ProgressRecorded, userID, entry.ID)
	return entry.ID, nil
}

// Analytics averages the trailing window of days, capped at 90.
func (s *ProgressService) Analytics(ctx context.Context, userID primitive.ObjectID, days int) (model.AnalyticsResult, error) {
	days = clampLimit(days, defaultAnalyticsDays, maxAnalyticsDays)
	since := timeNow().Add(-time.Duration(days) * 24 * time.Hour)

	summary, err := s.progress.Analytics(ctx, userID, since)
	if err != nil {
		return model.AnalyticsResult{}, err
	}
	trends, err := s.progress.WeeklyTrends(ctx, userID, since)
	if err != nil {
		return model.AnalyticsResult{}, err
	}
	if trends == nil {
		trends = []model.WeeklyTrend{}
	}

	return model.AnalyticsResult{Analytics: summary, PeriodDays: days, Trends: trends}, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
