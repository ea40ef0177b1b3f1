package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/config"
	"github.com/spec-kit/family-photo-service/internal/events"
)

// NotificationService turns domain events into push notifications for the
// rest of the family.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      *FamilyService
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, families *FamilyService, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      families,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLetterSent, n.handleLetterSent)
	n.dispatcher.Subscribe(events.EventPhotoAdded, n.handlePhotoAdded)
	n.dispatcher.Subscribe(events.EventScheduleCreated, n.handleScheduleCreated)
	n.dispatcher.Subscribe(events.EventFamilyJoined, n.handleFamilyJoined)
}

func (n *NotificationService) handleLetterSent(ctx context.Context, event events.Event) error {
	n.logger.Info("LetterSent", zap.String("family_id", event.FamilyID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.LetterSentPayload)
	if !ok {
		return nil
	}
	n.sendPushStub(ctx, event, []string{payload.ReceiverID})
	return nil
}

func (n *NotificationService) handlePhotoAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("PhotoAdded", zap.String("family_id", event.FamilyID), zap.Any("payload", event.Payload))
	return n.notifyFamilyExcept(ctx, event)
}

func (n *NotificationService) handleScheduleCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ScheduleCreated", zap.String("family_id", event.FamilyID), zap.Any("payload", event.Payload))
	return n.notifyFamilyExcept(ctx, event)
}

func (n *NotificationService) handleFamilyJoined(ctx context.Context, event events.Event) error {
	n.logger.Info("FamilyJoined", zap.String("family_id", event.FamilyID), zap.Any("payload", event.Payload))
	return n.notifyFamilyExcept(ctx, event)
}

// notifyFamilyExcept pushes to every family member other than the actor.
func (n *NotificationService) notifyFamilyExcept(ctx context.Context, event events.Event) error {
	members, err := n.users.Members(ctx, event.FamilyID)
	if err != nil {
		n.logger.Warn("notification recipients lookup failed",
			zap.String("family_id", event.FamilyID), zap.Error(err))
		return nil
	}
	targets := make([]string, 0, len(members))
	for _, member := range members {
		if member.ID != event.ActorID {
			targets = append(targets, member.ID)
		}
	}
	n.sendPushStub(ctx, event, targets)
	return nil
}

func (n *NotificationService) sendPushStub(ctx context.Context, event events.Event, targets []string) {
	if strings.TrimSpace(n.cfg.PushEndpoint) == "" || len(targets) == 0 {
		return
	}
	n.logger.Debug("sendPushStub",
		zap.String("endpoint", n.cfg.PushEndpoint),
		zap.String("sender", n.cfg.SenderName),
		zap.Strings("targets", targets),
		zap.String("event_type", string(event.Type)))
}
