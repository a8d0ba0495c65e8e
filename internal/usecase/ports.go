package usecase

import (
	"context"
	"io"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/footmate/internal/domain/user"
)

// Domain event subjects.
const (
	EventReportCardPublished   = "report_card.published"
	EventContractCreated       = "contract.created"
	EventContractStatusChanged = "contract.status_changed"
	EventFootplayerRequested   = "footplayer.requested"
)

const defaultPageSize = 10

// EventPublisher emits domain events. Callers log and drop publish errors.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type noopEventPublisher struct{}

func eventsOrNoop(events EventPublisher) EventPublisher {
	if events == nil {
		return noopEventPublisher{}
	}
	return events
}

func (noopEventPublisher) Publish(context.Context, string, any) error {
	return nil
}

// MediaStore persists uploaded files and returns their public URL.
type MediaStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// PasswordHasher hashes and verifies member passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints access tokens for authenticated members.
type TokenIssuer interface {
	Issue(principal user.Principal) (string, time.Time, error)
}

// runParallel runs independent read queries concurrently and returns the
// first error, cancelling the rest.
func runParallel(ctx context.Context, fns ...func(context.Context) error) error {
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, fn := range fns {
		p.Go(fn)
	}
	return p.Wait()
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
