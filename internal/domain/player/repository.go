package player

import (
	"context"

	"github.com/riskibarqy/footmate/internal/domain/paging"
)

// Repository describes player profile persistence needs from use cases.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	GetByEmail(ctx context.Context, email string) (Profile, bool, error)
	Update(ctx context.Context, profile Profile) error
}

// DirectoryFilter narrows the member directory listing.
type DirectoryFilter struct {
	paging.Params
	Search string
}

// DirectoryEntry is one row of the member directory.
type DirectoryEntry struct {
	UserID   string
	Name     string
	Position string
	Type     Type
	Email    string
	Status   string
}

type TypeCounts struct {
	Grassroot    int
	Professional int
	Amateur      int
}

// DirectoryRepository serves the read-only member directory.
type DirectoryRepository interface {
	List(ctx context.Context, filter DirectoryFilter) ([]DirectoryEntry, error)
	Count(ctx context.Context, filter DirectoryFilter) (int, error)
	CountByType(ctx context.Context) (TypeCounts, error)
}
