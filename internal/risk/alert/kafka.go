package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/goodnatureofminers/chainguard-backend/internal/model"
)

// Envelope is the message written to Kafka for every alert.
type Envelope struct {
	Type string          `json:"type"`
	TS   int64           `json:"ts"`
	Data json.RawMessage `json:"data"`
}

// KafkaPublisher writes alerts to a Kafka topic keyed by transaction hash.
type KafkaPublisher struct {
	topic    string
	producer sarama.SyncProducer
}

// NewKafkaPublisher connects a synchronous producer to the brokers.
func NewKafkaPublisher(brokers []string, topic string, cfg *sarama.Config) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(p, topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(p sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{topic: topic, producer: p}
}

// Publish implements Publisher. The producer is synchronous, so ctx is only
// checked before sending.
func (k *KafkaPublisher) Publish(ctx context.Context, a model.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	b, err := json.Marshal(Envelope{
		Type: string(a.Type),
		TS:   time.Now().UnixMilli(),
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(a.Transaction.Hash),
		Value: sarama.ByteEncoder(b),
	}
	if _, _, err = k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send alert %s: %w", a.Transaction.Hash, err)
	}
	return nil
}

// Close closes the underlying producer.
func (k *KafkaPublisher) Close() error {
	if k.producer == nil {
		return nil
	}
	return k.producer.Close()
}
