package ability

import "context"

// Repository describes ability reference data access.
type Repository interface {
	List(ctx context.Context) ([]Ability, error)
	// ListWithAttributesByIDs loads the requested abilities with their
	// attributes in one round trip. Unknown ids are omitted.
	ListWithAttributesByIDs(ctx context.Context, ids []string) ([]Ability, error)
	ListPositions(ctx context.Context) ([]Position, error)
}
