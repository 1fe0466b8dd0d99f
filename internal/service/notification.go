package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
)

const notificationListLen = 20

// NotificationService manages reminders.
type NotificationService struct {
	notifications NotificationStore
	events        events.Publisher
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifications NotificationStore, pub events.Publisher) *NotificationService {
	return &NotificationService{notifications: notifications, events: pub}
}

// List returns the caller's newest reminders.
func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, notificationListLen)
}

// Create schedules a reminder and returns its ID.
func (s *NotificationService) Create(ctx context.Context, userID primitive.ObjectID, req model.NotificationRequest) (primitive.ObjectID, error) {
	if strings.TrimSpace(req.ScheduledFor) == "" {
		return primitive.NilObjectID, invalid("scheduled_for is required (ISO string)")
	}
	at, err := parseISOTime(req.ScheduledFor)
	if err != nil {
		return primitive.NilObjectID, invalid("Invalid scheduled_for format")
	}

	n := &model.Notification{
		UserID:       userID,
		Title:        defaultString(req.Title, "Reminder"),
		Message:      req.Message,
		Type:         defaultString(req.Type, "reminder"),
		ScheduledFor: at,
		Read:         false,
		CreatedAt:    timeNow(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return primitive.NilObjectID, err
	}
	publish(ctx, s.events, events.NotificationCreated, userID, n.ID)
	return n.ID, nil
}
