package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/events"
	"github.com/spec-kit/usuario-service/internal/service"
)

// StartEventRelay registers the notification handlers on dispatcher. relay may
// be nil, in which case events are only logged.
func StartEventRelay(dispatcher events.Dispatcher, relay service.EventRelay, logger *zap.Logger) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	notifications := service.NewNotificationService(dispatcher, relay, logger)
	notifications.RegisterHandlers()
	return notifications
}
