package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ev := New(TypeCourseCreated, map[string]string{"courseId": "c1"})

	assert.Equal(t, TypeCourseCreated, ev.Type)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", ev.ID.String())
	assert.False(t, ev.OccurredAt.IsZero())

	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"type":"course.created"`)
	assert.Contains(t, string(body), `"courseId":"c1"`)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), New(TypeChefPromoted, nil)))
	assert.NoError(t, p.Close())
}

func TestAMQPPublisherClosedChannel(t *testing.T) {
	p := &AMQPPublisher{exchange: DefaultExchange}
	err := p.Publish(context.Background(), New(TypeChefPromoted, nil))
	assert.EqualError(t, err, "RabbitMQ channel is not available")
	assert.NoError(t, p.Close())
}

func TestAMQPPublisherCancelledContext(t *testing.T) {
	p := &AMQPPublisher{exchange: DefaultExchange}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, New(TypeChefPromoted, nil)), context.Canceled)
}
