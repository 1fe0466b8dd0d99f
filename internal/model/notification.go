package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a reminder scheduled by a user.
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title        string             `bson:"title" json:"title"`
	Message      string             `bson:"message" json:"message"`
	Type         string             `bson:"type" json:"type"`
	ScheduledFor time.Time          `bson:"scheduled_for" json:"scheduled_for"`
	Read         bool               `bson:"read" json:"read"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// NotificationRequest creates a reminder.
type NotificationRequest struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	Type         string `json:"type"`
	ScheduledFor string `json:"scheduled_for"`
}
