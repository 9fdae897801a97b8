package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
	closed  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.err
}

func (f *fakeConn) Close() { f.closed = true }

func TestNATSPublisher(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, "")

	app := models.Application{ID: "a1", JobID: "j1", Email: "ada@example.com"}
	require.NoError(t, p.PublishApplicationCreated(context.Background(), app))

	assert.Equal(t, DefaultSubject, fc.subject)
	var got map[string]any
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.Equal(t, "a1", got["id"])
	assert.Nil(t, got["linkedin"])

	p.Close()
	assert.True(t, fc.closed)
}

func TestNATSPublisherErrors(t *testing.T) {
	fc := &fakeConn{err: errors.New("nats: connection closed")}
	p := newPublisher(fc, "jobs.applied")

	err := p.PublishApplicationCreated(context.Background(), models.Application{})
	assert.ErrorContains(t, err, "jobs.applied")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.PublishApplicationCreated(ctx, models.Application{}), context.Canceled)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishApplicationCreated(context.Background(), models.Application{}))
	p.Close()
}
