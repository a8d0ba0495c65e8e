package achievement

import (
	"context"

	"github.com/riskibarqy/footmate/internal/domain/paging"
)

type ListFilter struct {
	paging.Params
	UserID string
}

// Repository describes achievement persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Achievement) error
	GetByID(ctx context.Context, id string) (Achievement, bool, error)
	GetByIDIncludingDeleted(ctx context.Context, id string) (Achievement, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Achievement, error)
	Count(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, item Achievement) (bool, error)
	SoftDelete(ctx context.Context, userID, id string) (bool, error)
}
