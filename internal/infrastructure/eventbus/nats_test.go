package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

type recordingPublisher struct {
	subject string
	data    []byte
	err     error
}

func (r *recordingPublisher) Publish(subject string, data []byte) error {
	r.subject = subject
	r.data = data
	return r.err
}

func TestNATSPublisher_PublishesEnvelope(t *testing.T) {
	t.Parallel()

	rec := &recordingPublisher{}
	p := newPublisher(rec, ".footmate.")
	fixed := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	if err := p.Publish(context.Background(), "contract.created", map[string]string{"contract_id": "c-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if rec.subject != "footmate.contract.created" {
		t.Fatalf("unexpected subject: %s", rec.subject)
	}

	var got struct {
		Subject    string            `json:"subject"`
		OccurredAt time.Time         `json:"occurred_at"`
		Payload    map[string]string `json:"payload"`
	}
	if err := sonic.Unmarshal(rec.data, &got); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if got.Subject != "contract.created" || !got.OccurredAt.Equal(fixed) || got.Payload["contract_id"] != "c-1" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
}

func TestNATSPublisher_Errors(t *testing.T) {
	t.Parallel()

	p := newPublisher(&recordingPublisher{err: errors.New("down")}, "")
	if err := p.Publish(context.Background(), "x", nil); err == nil {
		t.Fatalf("expected publish error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := newPublisher(&recordingPublisher{}, "").Publish(ctx, "x", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
