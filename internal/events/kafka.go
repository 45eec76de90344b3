package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/service"
)

const defaultTopic = "cart-events"

// KafkaPublisher emits cart mutation events for downstream consumers (the
// sales reports aggregate them). Delivery is fire and forget: a broker
// outage is logged and the mutation path carries on.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher returns nil when brokers is empty, which disables
// publishing entirely (the service treats a nil Publisher as "off").
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	if len(brokers) == 0 {
		return nil
	}
	if topic == "" {
		topic = defaultTopic
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		log: log,
	}
}

func (p *KafkaPublisher) Publish(_ context.Context, ev service.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("marshal cart event failed", zap.Error(err))
		return
	}

	// Detached from the request context so a canceled request doesn't
	// drop the event, bounded so a dead broker doesn't leak goroutines.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(ev.CartKey),
			Value: data,
		})
		if err != nil {
			p.log.Warn("publish cart event failed",
				zap.String("type", ev.Type),
				zap.String("cart_key", ev.CartKey),
				zap.Error(err))
		}
	}()
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
