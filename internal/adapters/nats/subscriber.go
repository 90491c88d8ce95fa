package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeActivationRequests consumes queued activation requests. Failed
// requests are redelivered up to three times.
func (s *Subscriber) SubscribeActivationRequests(ctx context.Context, handler func(ctx context.Context, venueID string, reloadConfig bool) error) error {
	sub, err := s.js.Subscribe(SubjectActivateRequest, func(msg *nats.Msg) {
		var req ActivationRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.VenueID == "" {
			// Malformed requests are never going to succeed.
			_ = msg.Term()
			return
		}
		if err := handler(ctx, req.VenueID, req.ReloadConfig); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("venue-activator"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeVenueActivated receives every venue.activated event from now on.
func (s *Subscriber) SubscribeVenueActivated(ctx context.Context, handler func(ctx context.Context, venue *domain.Venue) error) error {
	sub, err := s.js.Subscribe(SubjectVenueActivated, func(msg *nats.Msg) {
		var v domain.Venue
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &v); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.DeliverNew(),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
