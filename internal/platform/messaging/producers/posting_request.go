package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/hisab-backoffice/internal/config"
)

// PostingReqMessageProducer publishes journal posting requests from the
// report server to the posting topic.
type PostingReqMessageProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// Creates a new posting request producer and ensures the topic exists
func NewPostingReqMessageProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*PostingReqMessageProducer, error) {
	if cfg.PostingTopic == "" {
		return nil, fmt.Errorf("kafka posting topic is not configured")
	}

	writer, err := newTopicWriter(cfg, cfg.PostingTopic, true, logger)
	if err != nil {
		return nil, err
	}

	return &PostingReqMessageProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.PostingTopic,
	}, nil
}

func (p *PostingReqMessageProducer) Publish(ctx context.Context, key string, value interface{}) error {
	return publishJSON(ctx, p.logger, p.writer, p.topic, key, value)
}

func (p *PostingReqMessageProducer) Close() error {
	p.logger.Info("Closing posting request Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

// PostedEventProducer publishes posted-entry events relayed by the outbox
// poller. Events are written synchronously with full acks: losing one would
// silently desynchronize downstream consumers.
type PostedEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// Creates a new posted-event producer and ensures the topic exists
func NewPostedEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*PostedEventProducer, error) {
	if cfg.PostedEventsTopic == "" {
		return nil, fmt.Errorf("kafka posted events topic is not configured")
	}

	writer, err := newTopicWriter(cfg, cfg.PostedEventsTopic, false, logger)
	if err != nil {
		return nil, err
	}

	return &PostedEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.PostedEventsTopic,
	}, nil
}

func (p *PostedEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	return publishJSON(ctx, p.logger, p.writer, p.topic, key, value)
}

func (p *PostedEventProducer) Close() error {
	p.logger.Info("Closing posted event Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

// newTopicWriter dials the brokers, ensures the topic exists and returns a
// configured writer. Async writers trade delivery confirmation for
// throughput; the posting request path accepts that, the event relay does not.
func newTopicWriter(cfg *config.KafkaConfig, topic string, async bool, logger *slog.Logger) (*kafka.Writer, error) {
	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for topic %s: %w", topic, err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, topic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure topic %s exists: %w", topic, err)
	}

	acks := kafka.RequireAll
	if async {
		acks = kafka.RequireOne
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: acks,
		Async:        async,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages", "topic", topic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote messages", "topic", topic, "count", len(messages))
			}
		},
	}, nil
}

func publishJSON(ctx context.Context, logger *slog.Logger, writer KafkaWriter, topic, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for topic %s: %w", topic, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		logger.Error("Failed to publish message",
			"topic", topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s: %w", topic, err)
	}

	logger.Debug("Published message",
		"topic", topic,
		"key", key,
	)
	return nil
}
