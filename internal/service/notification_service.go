package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/housekeeping-service/internal/config"
	"github.com/spec-kit/housekeeping-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStaffAdded, n.handleEvent)
	n.dispatcher.Subscribe(events.EventStaffUpdated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventStaffRemoved, n.handleEvent)
	n.dispatcher.Subscribe(events.EventRoomStatusChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTaskCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTaskCompleted, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
