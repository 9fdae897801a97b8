// Package events announces created applications to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is where application events are published.
const DefaultSubject = "applications.created"

// Publisher sends application events. Callers treat failures as
// non-fatal; the application is already stored.
type Publisher interface {
	PublishApplicationCreated(ctx context.Context, app models.Application) error
	Close()
}

// Nop drops every event.
type Nop struct{}

func (Nop) PublishApplicationCreated(context.Context, models.Application) error { return nil }

func (Nop) Close() {}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

type NATSPublisher struct {
	nc      conn
	subject string
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("job-board"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return newPublisher(nc, subject), nil
}

func newPublisher(nc conn, subject string) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{nc: nc, subject: subject}
}

// PublishApplicationCreated publishes the application as JSON.
func (p *NATSPublisher) PublishApplicationCreated(ctx context.Context, app models.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshal application event: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}
