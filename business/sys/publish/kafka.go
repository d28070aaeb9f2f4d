package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/state"
	"github.com/segmentio/kafka-go"
)

// KafkaConfig represents the settings for the kafka publisher.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
}

// Kafka writes ledger events to a kafka topic.
type Kafka struct {
	topic  string
	writer *kafka.Writer
}

// NewKafka constructs a publisher for the configured topic. Connections to
// the brokers are made on the first write.
func NewKafka(cfg KafkaConfig) *Kafka {
	return &Kafka{
		topic: cfg.Topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchSize:    cfg.BatchSize,
			BatchTimeout: cfg.BatchTimeout,
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish writes the event to the topic keyed by its hash.
func (k *Kafka) Publish(ctx context.Context, evt state.Event) error {
	data, err := marshal(evt)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key(evt)),
		Value: data,
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to topic %s: %w", k.topic, err)
	}

	return nil
}

// Close flushes pending writes and closes the writer.
func (k *Kafka) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}
