package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/contract"
)

type ContractRepository struct {
	mu    sync.RWMutex
	items map[string]contract.EmploymentContract
}

func NewContractRepository() *ContractRepository {
	return &ContractRepository{items: make(map[string]contract.EmploymentContract)}
}

func (r *ContractRepository) Create(_ context.Context, item contract.EmploymentContract) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkLocked(item, true); err != nil {
		return err
	}
	r.items[item.ID] = cloneContract(item)
	return nil
}

func (r *ContractRepository) CheckOpen(_ context.Context, playerEmail, clubAcademyEmail string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.checkLocked(contract.EmploymentContract{PlayerEmail: playerEmail, ClubAcademyEmail: clubAcademyEmail}, true)
}

func (r *ContractRepository) GetByID(_ context.Context, id string) (contract.EmploymentContract, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil {
		return contract.EmploymentContract{}, false, nil
	}
	return cloneContract(item), true, nil
}

func (r *ContractRepository) GetBySender(ctx context.Context, sentBy, id string) (contract.EmploymentContract, bool, error) {
	item, ok, err := r.GetByID(ctx, id)
	if err != nil || !ok || item.SentBy != sentBy {
		return contract.EmploymentContract{}, false, err
	}
	return item, true, nil
}

func (r *ContractRepository) ListByParty(_ context.Context, userID string) ([]contract.EmploymentContract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contract.EmploymentContract, 0)
	for _, item := range r.items {
		if item.DeletedAt == nil && (item.SentBy == userID || item.SendTo == userID) {
			out = append(out, cloneContract(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ContractRepository) UpdateModifiable(_ context.Context, item contract.EmploymentContract) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok || existing.DeletedAt != nil || existing.SentBy != item.SentBy || !existing.Modifiable() {
		return false, nil
	}
	if err := r.checkLocked(item, false); err != nil {
		return false, err
	}
	r.items[item.ID] = cloneContract(item)
	return true, nil
}

func (r *ContractRepository) UpdateStatus(_ context.Context, sendTo, id string, status contract.Status, remarks string) (contract.EmploymentContract, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil || item.SendTo != sendTo || item.Status != contract.StatusPending {
		return contract.EmploymentContract{}, false, nil
	}
	if status == contract.StatusActive {
		for otherID, other := range r.items {
			if otherID != id && other.DeletedAt == nil && other.Status == contract.StatusActive && other.PlayerEmail == item.PlayerEmail {
				return contract.EmploymentContract{}, false, contract.ErrActiveContractExists
			}
		}
	}
	item.Status = status
	item.Remarks = remarks
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item
	return cloneContract(item), true, nil
}

func (r *ContractRepository) SoftDeleteModifiable(_ context.Context, sentBy, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil || item.SentBy != sentBy || !item.Modifiable() {
		return false, nil
	}
	now := time.Now().UTC()
	item.DeletedAt = &now
	r.items[id] = item
	return true, nil
}

func (r *ContractRepository) CompleteExpired(_ context.Context, today time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, item := range r.items {
		if item.DeletedAt == nil && item.Expired(today) {
			item.Status = contract.StatusCompleted
			r.items[id] = item
			count++
		}
	}
	return count, nil
}

// checkLocked enforces the live-row invariants for item against every other
// contract. Caller holds the write lock.
// An active contract wins over a pending pair.
func (r *ContractRepository) checkLocked(item contract.EmploymentContract, withActive bool) error {
	var pending bool
	for id, other := range r.items {
		if id == item.ID || other.DeletedAt != nil || other.PlayerEmail != item.PlayerEmail {
			continue
		}
		if withActive && other.Status == contract.StatusActive {
			return contract.ErrActiveContractExists
		}
		if other.Status == contract.StatusPending && other.ClubAcademyEmail == item.ClubAcademyEmail {
			pending = true
		}
	}
	if pending {
		return contract.ErrPendingContractExists
	}
	return nil
}

func cloneContract(c contract.EmploymentContract) contract.EmploymentContract {
	copied := c
	copied.DateOfSigning = cloneTime(c.DateOfSigning)
	copied.DeletedAt = cloneTime(c.DeletedAt)
	return copied
}
