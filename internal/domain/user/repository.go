package user

import (
	"context"
	"errors"
)

var ErrUsernameTaken = errors.New("username already registered")

// Repository describes login persistence needs from use cases.
type Repository interface {
	// Register stores the login and its profile together. It returns
	// ErrUsernameTaken when a live login already owns the username.
	Register(ctx context.Context, login Login, profile Profile) error
	GetByUserID(ctx context.Context, userID string) (Login, bool, error)
	GetByUserIDIncludingDeleted(ctx context.Context, userID string) (Login, bool, error)
	GetByUsername(ctx context.Context, username string) (Login, bool, error)
	GetByResetToken(ctx context.Context, token string) (Login, bool, error)
	Update(ctx context.Context, login Login) error
}
