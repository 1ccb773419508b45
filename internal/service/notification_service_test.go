package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/emsdev/ems-service/internal/config"
	"github.com/emsdev/ems-service/internal/events"
)

func TestNotificationService_Routes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewNotificationService(zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@acme.test",
		WebhookURL: "https://hooks.acme.test/ems",
	})
	ctx := context.Background()

	if err := n.Handle(ctx, events.New(events.EventTaskAssigned, "c-1", "u-1", "t-1", nil)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := logs.FilterMessage("email notification").Len(); got != 1 {
		t.Fatalf("expected one email, got %d", got)
	}
	if got := logs.FilterMessage("webhook notification").Len(); got != 1 {
		t.Fatalf("expected one webhook, got %d", got)
	}

	if err := n.Handle(ctx, events.New(events.EventPaymentCreated, "c-1", "u-1", "p-1", nil)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := logs.FilterMessage("email notification").Len(); got != 1 {
		t.Fatalf("payments notify by webhook only, got %d emails", got)
	}

	before := logs.Len()
	if err := n.Handle(ctx, events.New(events.EventEmployeeDeleted, "c-1", "u-1", "e-1", nil)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if logs.Len() != before {
		t.Fatal("unrouted events should not be logged")
	}
}

func TestNotificationService_StubsNeedTargets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewNotificationService(zap.New(core), config.NotificationConfig{})

	if err := n.Handle(context.Background(), events.New(events.EventPackageSubscribed, "c-1", "u-1", "p-1", nil)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if logs.FilterMessage("email notification").Len() != 0 || logs.FilterMessage("webhook notification").Len() != 0 {
		t.Fatal("no channel is configured, nothing should be sent")
	}
	if logs.FilterMessage(string(events.EventPackageSubscribed)).Len() != 1 {
		t.Fatal("the event itself is still logged")
	}
	if len(n.EventTypes()) != len(notificationRoutes) {
		t.Fatalf("event types out of sync with routes")
	}
}
