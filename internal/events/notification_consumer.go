package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/kafka"
)

// NotificationConsumer listens to the booking lifecycle stream and logs
// notification intents for owners and bookers. It backs the worker binary.
type NotificationConsumer struct {
	consumer *kafka.Consumer
	logger   *zap.Logger
}

// NewNotificationConsumer creates a new NotificationConsumer.
func NewNotificationConsumer(brokers []string, groupID string, logger *zap.Logger) *NotificationConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicBookingEvents, logger)
	return &NotificationConsumer{
		consumer: consumer,
		logger:   logger,
	}
}

// Start begins consuming booking events. This blocks until the context is cancelled.
func (c *NotificationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *NotificationConsumer) Close() error {
	return c.consumer.Close()
}

func (c *NotificationConsumer) handleMessage(_ context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	var evt BookingLifecycleEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse BookingLifecycleEvent data",
			zap.Error(err),
			zap.String("type", cloudEvent.Type),
		)
		return nil // Don't retry malformed data
	}

	switch cloudEvent.Type {
	case BookingCreated:
		c.logger.Info("notify owner: new booking awaits approval",
			zap.Int64("booking_id", evt.BookingID),
			zap.Int64("owner_id", evt.OwnerID),
			zap.String("item", evt.ItemName),
		)
	case BookingApproved, BookingRejected:
		c.logger.Info("notify booker: booking was decided",
			zap.Int64("booking_id", evt.BookingID),
			zap.Int64("booker_id", evt.BookerID),
			zap.String("status", evt.Status),
		)
	case BookingCanceled:
		c.logger.Info("notify owner: booking was canceled by booker",
			zap.Int64("booking_id", evt.BookingID),
			zap.Int64("owner_id", evt.OwnerID),
		)
	default:
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
	}
	return nil
}
