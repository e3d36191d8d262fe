package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange  string
	key       string
	published []amqp.Publishing
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange = exchange
	f.key = key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{ch: ch, exchange: "orders"}

	payload := map[string]any{"code": "ORD-1", "userId": 3}
	require.NoError(t, p.Publish(context.Background(), RoutingOrderCreated, payload))

	require.Len(t, ch.published, 1)
	assert.Equal(t, "orders", ch.exchange)
	assert.Equal(t, RoutingOrderCreated, ch.key)

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.False(t, msg.Timestamp.IsZero())

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, "ORD-1", got["code"])
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	p := &RabbitPublisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "orders"}

	err := p.Publish(context.Background(), RoutingOrderCreated, struct{}{})
	assert.EqualError(t, err, "channel closed")
}

func TestRabbitPublisher_MarshalError(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{ch: ch, exchange: "orders"}

	err := p.Publish(context.Background(), RoutingOrderCreated, make(chan int))
	assert.Error(t, err)
	assert.Empty(t, ch.published)
}

func TestRabbitPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{ch: ch, exchange: "orders"}

	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), RoutingOrderCreated, nil))
	assert.NoError(t, p.Close())
}
