package reportcard

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/paging"
)

var ErrDraftExists = errors.New("draft report card already exists")

// Repository describes report card persistence needs from use cases.
type Repository interface {
	// Create inserts the card unless a live draft already exists for the
	// (sender, player) pair, in which case it returns ErrDraftExists.
	Create(ctx context.Context, card ReportCard) error
	GetByID(ctx context.Context, id string) (ReportCard, bool, error)
	GetBySender(ctx context.Context, sentBy, id string) (ReportCard, bool, error)
	GetDraft(ctx context.Context, sentBy, sendTo string) (ReportCard, bool, error)
	// UpdateDraft rewrites a card that is still a draft. It reports false
	// when the card is gone or no longer a draft.
	UpdateDraft(ctx context.Context, card ReportCard) (bool, error)
}

type ManagedFilter struct {
	paging.Params
	SentBy         string
	From           *time.Time
	To             *time.Time
	PlayerCategory []string
	Status         []string
	Search         string
}

type PlayerFilter struct {
	paging.Params
	SendTo    string
	From      *time.Time
	To        *time.Time
	Name      []string
	CreatedBy []string
	Search    string
}

type ManagedPlayerFilter struct {
	paging.Params
	SentBy   string
	PlayerID string
}

// QueryRepository serves the report card list views.
type QueryRepository interface {
	ListManaged(ctx context.Context, filter ManagedFilter) ([]ManagedRow, error)
	CountManaged(ctx context.Context, filter ManagedFilter) (int, error)
	ListForPlayer(ctx context.Context, filter PlayerFilter) ([]PlayerRow, error)
	CountForPlayer(ctx context.Context, filter PlayerFilter) (int, error)
	ListManagedPlayer(ctx context.Context, filter ManagedPlayerFilter) ([]ManagedPlayerRow, error)
	CountManagedPlayer(ctx context.Context, filter ManagedPlayerFilter) (int, error)
}
