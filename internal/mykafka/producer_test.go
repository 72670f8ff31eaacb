package mykafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	t.Parallel()

	_, err := NewProducer(nil, []string{TopicUserEvents})
	assert.Error(t, err)
}

func TestPublishEvent_UnknownTopic(t *testing.T) {
	t.Parallel()

	p, err := NewProducer([]string{"localhost:9092"}, []string{TopicUserEvents})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	err = p.PublishEvent(context.Background(), "nonexistent_topic", "k", map[string]string{"a": "b"})
	assert.ErrorContains(t, err, "unknown topic")
}

func TestPublishEvent_RejectsUnmarshalableEvent(t *testing.T) {
	t.Parallel()

	p, err := NewProducer([]string{"localhost:9092"}, []string{TopicUserEvents})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	err = p.PublishEvent(context.Background(), TopicUserEvents, "k", make(chan int))
	assert.ErrorContains(t, err, "json.Marshal")
}
