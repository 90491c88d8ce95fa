package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// Publisher implements ports.EventPublisher and ports.MapControl on NATS.
// Events go through JetStream; map commands are plain core-NATS messages
// since a command nobody receives is stale anyway.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the venue streams exist.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			Name:      streamEvents,
			Subjects:  []string{"venues.events.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      streamRequests,
			Subjects:  []string{"venues.requests.>"},
			Retention: nats.WorkQueuePolicy,
			MaxAge:    1 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist, try update.
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishVenueActivated(ctx context.Context, venue *domain.Venue) error {
	data, err := json.Marshal(venue)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectVenueActivated, data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishAppConfig(ctx context.Context, cfg *domain.AppConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectAppConfig, data, nats.Context(ctx))
	return err
}

// RequestActivation queues an activation for the activator worker.
func (p *Publisher) RequestActivation(ctx context.Context, venueID string, reloadConfig bool) error {
	data, err := json.Marshal(ActivationRequest{VenueID: venueID, ReloadConfig: reloadConfig})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectActivateRequest, data, nats.Context(ctx))
	return err
}

func (p *Publisher) SetVenue(ctx context.Context, venue *domain.Venue) error {
	return p.sendCommand(ctx, MapCommand{Command: CommandSetVenue, VenueID: venue.ID, Venue: venue})
}

func (p *Publisher) FitVenue(ctx context.Context, venueID string) error {
	return p.sendCommand(ctx, MapCommand{Command: CommandFitVenue, VenueID: venueID})
}

func (p *Publisher) SetVenueAsReturnToValue(ctx context.Context, venue *domain.Venue) error {
	return p.sendCommand(ctx, MapCommand{Command: CommandReturnTo, VenueID: venue.ID})
}

func (p *Publisher) sendCommand(ctx context.Context, cmd MapCommand) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd.SentAt = time.Now().UTC()
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectMapCommandPrefix+cmd.Command, data)
}

// Conn returns the underlying connection.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
