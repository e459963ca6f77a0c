package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/events"
)

// EventRelay forwards events outside the process.
type EventRelay interface {
	Handle(ctx context.Context, event events.Event) error
	Channel() string
}

// NotificationService logs usuario events and relays them when a relay is set.
type NotificationService struct {
	dispatcher events.Dispatcher
	relay      EventRelay
	logger     *zap.Logger
}

// NewNotificationService creates the service. relay may be nil.
func NewNotificationService(dispatcher events.Dispatcher, relay EventRelay, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		relay:      relay,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every usuario event.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		n.dispatcher.Subscribe(eventType, n.handleUserEvent)
	}
}

func (n *NotificationService) handleUserEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload))

	if n.relay == nil {
		return nil
	}
	if err := n.relay.Handle(ctx, event); err != nil {
		return err
	}
	n.logger.Debug("event relayed",
		zap.String("event_id", event.ID),
		zap.String("channel", n.relay.Channel()))
	return nil
}
