package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKafkaPublisher_DisabledWithoutBrokers(t *testing.T) {
	assert.Nil(t, NewKafkaPublisher(nil, "cart-events", nil))
	assert.Nil(t, NewKafkaPublisher([]string{}, "", nil))
}

func TestNewKafkaPublisher_Defaults(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "", nil)
	t.Cleanup(func() { p.Close() })

	assert.Equal(t, defaultTopic, p.writer.Topic)
}
