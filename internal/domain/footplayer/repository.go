package footplayer

import (
	"context"
	"errors"

	"github.com/riskibarqy/footmate/internal/domain/paging"
)

var ErrRequestExists = errors.New("footplayer request already exists")

type ListFilter struct {
	paging.Params
	SentBy string
	Search string
}

// Repository describes footplayer request persistence needs from use cases.
type Repository interface {
	// Create fails with ErrRequestExists when a live request already links
	// the pair.
	Create(ctx context.Context, item Request) error
	GetByID(ctx context.Context, id string) (Request, bool, error)
	GetByIDIncludingDeleted(ctx context.Context, id string) (Request, bool, error)
	// FindLink returns the live request between sender and player.
	FindLink(ctx context.Context, sentBy, playerUserID string) (Request, bool, error)
	UpdateStatus(ctx context.Context, id, playerUserID string, from, to Status) (bool, error)
	SoftDelete(ctx context.Context, id, sentBy string) (bool, error)
}

// ListRepository serves the joined footplayer listing.
type ListRepository interface {
	List(ctx context.Context, filter ListFilter) ([]ListRow, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}
