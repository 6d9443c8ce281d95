package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/courier-tracker/internal/config"
	"github.com/couchcryptid/courier-tracker/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces snapshot messages to a Kafka topic.
// It implements tracker.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           cfg.PositionInterval,
		AllowAutoTopicCreation: true,
	}
	logger.Info("kafka snapshot publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a snapshot and writes it keyed by the current location,
// so every message for one station lands on the same partition.
func (w *Writer) Publish(ctx context.Context, snap domain.Snapshot) error {
	msg, err := serializeToMessage(snap)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Snapshot into a Kafka message.
func serializeToMessage(snap domain.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snap.State.Current.Name),
		Value: data,
		Time:  snap.State.ResolvedAt,
		Headers: []kafkago.Header{
			{Key: "phase", Value: []byte(snap.State.Phase)},
			{Key: "resolved_at", Value: []byte(snap.State.ResolvedAt.Format(time.RFC3339))},
		},
	}, nil
}
