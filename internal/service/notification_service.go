package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-assignment/internal/config"
	"github.com/spec-kit/ticket-assignment/internal/events"
)

// NotificationService surfaces assignment events to operators. Degraded
// assignments are logged at warn level so fallback usage is visible without
// scanning run records.
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
	n.dispatcher.Subscribe(events.EventRunStarted, n.handleRunStarted)
	n.dispatcher.Subscribe(events.EventRunCompleted, n.handleRunCompleted)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
}

func (n *NotificationService) handleRunStarted(ctx context.Context, event events.Event) error {
	n.logger.Info("AssignmentRunStarted", zap.String("run_id", event.RunID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRunCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("AssignmentRunCompleted", zap.String("run_id", event.RunID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if ok && payload.Fallback {
		n.logger.Warn("TicketAssignedViaFallback",
			zap.String("run_id", event.RunID),
			zap.String("ticket_id", payload.TicketID),
			zap.String("agent_id", payload.AssignedAgentID))
		n.sendWebhookNotificationStub(ctx, event)
		return nil
	}
	n.logger.Debug("TicketAssigned", zap.String("run_id", event.RunID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("run_id", event.RunID),
		zap.String("event_type", string(event.Type)))
}
