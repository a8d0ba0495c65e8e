package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/platform/logging"
	"github.com/riskibarqy/footmate/internal/platform/resilience"
)

func TestNewSMTPSender_Validates(t *testing.T) {
	t.Parallel()

	if _, err := NewSMTPSender(SMTPConfig{From: "no-reply@example.com"}, logging.NewNop()); err == nil {
		t.Fatalf("expected error without host")
	}
	if _, err := NewSMTPSender(SMTPConfig{Host: "localhost"}, logging.NewNop()); err == nil {
		t.Fatalf("expected error without from address")
	}
}

func TestSMTPSender_OpensCircuitAfterFailures(t *testing.T) {
	t.Parallel()

	sender, err := NewSMTPSender(SMTPConfig{
		Host:    "127.0.0.1",
		Port:    1,
		From:    "no-reply@example.com",
		Timeout: 500 * time.Millisecond,
		Breaker: resilience.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenProbes:   1,
		},
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new smtp sender: %v", err)
	}

	msg := notification.Message{To: "player@example.com", Subject: "s", Text: "t", HTML: "<p>t</p>"}
	if err := sender.Send(context.Background(), msg); err == nil {
		t.Fatalf("expected delivery to unreachable relay to fail")
	}
	if err := sender.Send(context.Background(), msg); !errors.Is(err, resilience.ErrOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}
