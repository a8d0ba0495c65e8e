package clubacademy

import "context"

// Repository describes club/academy profile persistence needs from use cases.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, bool, error)
	Update(ctx context.Context, profile Profile) error
}
