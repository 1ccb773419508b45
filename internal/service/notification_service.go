package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/emsdev/ems-service/internal/config"
	"github.com/emsdev/ems-service/internal/events"
)

// notificationRoute says which channels an event type goes out on.
type notificationRoute struct {
	subject string
	email   bool
	webhook bool
}

var notificationRoutes = map[events.EventType]notificationRoute{
	events.EventEmployeeCreated:          {subject: "welcome", email: true},
	events.EventTaskAssigned:             {subject: "task assigned", email: true, webhook: true},
	events.EventTaskStatusChanged:        {webhook: true},
	events.EventApplicationReceived:      {subject: "application received", email: true, webhook: true},
	events.EventApplicationStatusChanged: {subject: "application update", email: true},
	events.EventPaymentCreated:           {webhook: true},
	events.EventPackageSubscribed:        {subject: "subscription receipt", email: true, webhook: true},
}

// NotificationService fans domain events out to email and webhook stubs.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// EventTypes lists the events that produce notifications.
func (n *NotificationService) EventTypes() []events.EventType {
	out := make([]events.EventType, 0, len(notificationRoutes))
	for t := range notificationRoutes {
		out = append(out, t)
	}
	return out
}

// Handle delivers one event. Unrouted events are ignored.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	route, ok := notificationRoutes[event.Type]
	if !ok {
		return nil
	}
	n.logger.Info(string(event.Type),
		zap.String("company_id", event.CompanyID),
		zap.String("entity_id", event.EntityID),
		zap.Any("payload", event.Payload))
	if route.email {
		n.sendEmail(ctx, event, route.subject)
	}
	if route.webhook {
		n.sendWebhook(ctx, event)
	}
	return nil
}

func (n *NotificationService) sendEmail(_ context.Context, event events.Event, subject string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject", subject),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhook(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
