package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"vetclinic/config"
	"vetclinic/internal/domain"
)

const (
	headerEventID   = "event-id"
	headerEventType = "event-type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes notifications to a topic consumed by the
// notification service. Messages are keyed by recipient.
type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}

	logger.Info("kafka publisher configured", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
	return &KafkaPublisher{writer: writer, logger: logger}, nil
}

func (p *KafkaPublisher) Send(ctx context.Context, notification domain.Notification) error {
	msg, err := buildMessage(notification, uuid.NewString())
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publishing notification: %w", err)
	}

	p.logger.Debug("notification published", zap.String("type", notification.Type))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func buildMessage(notification domain.Notification, eventID string) (kafka.Message, error) {
	payload, err := json.Marshal(notification)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: encoding notification: %w", err)
	}

	return kafka.Message{
		Key:   []byte(notification.Recipient),
		Value: payload,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(eventID)},
			{Key: headerEventType, Value: []byte(notification.Type)},
		},
	}, nil
}
