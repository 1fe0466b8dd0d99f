// Package events publishes domain events after records are written.
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects.
const (
	MealPlanGenerated   = "mealplans.generated"
	MealPlanSaved       = "mealplans.saved"
	RecipeGenerated     = "recipes.generated"
	ProgressRecorded    = "progress.recorded"
	NotificationCreated = "notifications.created"
)

// Event is the JSON payload of every subject.
type Event struct {
	UserID     string    `json:"user_id"`
	RecordID   string    `json:"record_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, subject string, ev Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }

// NATSPublisher publishes events on a NATS connection.
type NATSPublisher struct {
	nc *nats.Conn
}

// ConnectNATS dials url and returns a publisher that owns the connection.
func ConnectNATS(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("satvic-planner-api"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return &NATSPublisher{nc: nc}, nil
}

// Publish marshals ev and sends it on subject.
func (p *NATSPublisher) Publish(_ context.Context, subject string, ev Event) error {
	if p.nc == nil || p.nc.IsClosed() {
		return nats.ErrConnectionClosed
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, data)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}
