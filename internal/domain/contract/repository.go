package contract

import (
	"context"
	"errors"
	"time"
)

var (
	ErrActiveContractExists  = errors.New("player already has an active contract")
	ErrPendingContractExists = errors.New("pending contract already exists for player and club")
)

// Repository describes employment contract persistence needs from use cases.
type Repository interface {
	// Create inserts a pending contract. It fails with ErrActiveContractExists
	// or ErrPendingContractExists when the player/pair invariants would break;
	// the check and the insert are atomic.
	Create(ctx context.Context, item EmploymentContract) error
	// CheckOpen returns ErrActiveContractExists when the player is bound, else
	// ErrPendingContractExists when the pair already has a pending contract.
	CheckOpen(ctx context.Context, playerEmail, clubAcademyEmail string) error
	GetByID(ctx context.Context, id string) (EmploymentContract, bool, error)
	GetBySender(ctx context.Context, sentBy, id string) (EmploymentContract, bool, error)
	ListByParty(ctx context.Context, userID string) ([]EmploymentContract, error)
	// UpdateModifiable rewrites a pending/disapproved contract owned by its
	// sender. It reports false when no such row exists.
	UpdateModifiable(ctx context.Context, item EmploymentContract) (bool, error)
	// UpdateStatus moves a pending contract addressed to sendTo. Activation
	// fails with ErrActiveContractExists when the player is already bound.
	UpdateStatus(ctx context.Context, sendTo, id string, status Status, remarks string) (EmploymentContract, bool, error)
	SoftDeleteModifiable(ctx context.Context, sentBy, id string) (bool, error)
	// CompleteExpired marks active contracts with expiry before today as completed.
	CompleteExpired(ctx context.Context, today time.Time) (int, error)
}
