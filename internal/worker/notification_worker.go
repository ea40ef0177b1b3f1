package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/service"
)

// StartNotificationWorker subscribes push-notification handlers to the event
// dispatcher. Delivery runs on the dispatcher's goroutines.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
	logger.Info("notification worker started")
}
