package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"yaarfetch-be/internal/logger"
)

// Event records a lifecycle status change on an order or match. Consumers
// (notifications, analytics) subscribe downstream; the core only emits.
type Event struct {
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	ActorID   string    `json:"actor_id,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(event Event)
	Close() error
}

// SaramaPublisher ships lifecycle events to a Kafka topic. Publishing is
// best-effort: a broker failure is logged, never surfaced to the caller.
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSaramaPublisher(brokers []string, topic string) (*SaramaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	prod, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return &SaramaPublisher{producer: prod, topic: topic}, nil
}

func (p *SaramaPublisher) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.L().Error("failed to encode lifecycle event", zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.EntityID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		logger.L().Error("failed to publish lifecycle event",
			zap.String("entity", event.Entity),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
		return
	}

	logger.L().Debug("lifecycle event published",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
}

func (p *SaramaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher is used when no Kafka brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
func (NopPublisher) Close() error  { return nil }
