package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, Brokers(" a:9092, ,b:9092 "))
	assert.Empty(t, Brokers(""))
}

func TestNewWithoutBrokersIsNoop(t *testing.T) {
	p := New("", "contact-messages")
	assert.False(t, p.Enabled())
	assert.ErrorIs(t, p.Publish(context.Background(), "k", map[string]string{}), ErrDisabled)
	assert.NoError(t, p.Close())
}

func TestNewWithBrokersIsKafka(t *testing.T) {
	p := New("localhost:9092", "contact-messages")
	k, ok := p.(*Kafka)
	require.True(t, ok)
	assert.True(t, k.Enabled())
	assert.Equal(t, "contact-messages", k.Topic())
	assert.NoError(t, k.Close())
}

func TestEventShape(t *testing.T) {
	b, err := json.Marshal(NewEvent("contact.created", map[string]string{"id": "m-1"}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "contact.created", got["type"])
	assert.Contains(t, got, "occurredAt")
	assert.Equal(t, map[string]any{"id": "m-1"}, got["data"])
}
