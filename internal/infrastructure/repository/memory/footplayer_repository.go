package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/footplayer"
)

type FootplayerRepository struct {
	mu    sync.RWMutex
	items map[string]footplayer.Request
}

func NewFootplayerRepository(seed ...footplayer.Request) *FootplayerRepository {
	items := make(map[string]footplayer.Request, len(seed))
	for _, item := range seed {
		items[item.ID] = cloneRequest(item)
	}
	return &FootplayerRepository{items: items}
}

func (r *FootplayerRepository) Create(_ context.Context, item footplayer.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.items {
		if other.DeletedAt == nil && other.SentBy == item.SentBy && other.SendTo.UserID == item.SendTo.UserID {
			return footplayer.ErrRequestExists
		}
	}
	r.items[item.ID] = cloneRequest(item)
	return nil
}

func (r *FootplayerRepository) GetByID(ctx context.Context, id string) (footplayer.Request, bool, error) {
	item, ok, err := r.GetByIDIncludingDeleted(ctx, id)
	if err != nil || !ok || item.DeletedAt != nil {
		return footplayer.Request{}, false, err
	}
	return item, true, nil
}

func (r *FootplayerRepository) GetByIDIncludingDeleted(_ context.Context, id string) (footplayer.Request, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return footplayer.Request{}, false, nil
	}
	return cloneRequest(item), true, nil
}

func (r *FootplayerRepository) FindLink(_ context.Context, sentBy, playerUserID string) (footplayer.Request, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.DeletedAt == nil && item.SentBy == sentBy && item.SendTo.UserID == playerUserID {
			return cloneRequest(item), true, nil
		}
	}
	return footplayer.Request{}, false, nil
}

func (r *FootplayerRepository) UpdateStatus(_ context.Context, id, playerUserID string, from, to footplayer.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil || item.SendTo.UserID != playerUserID || item.Status != from {
		return false, nil
	}
	item.Status = to
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item
	return true, nil
}

func (r *FootplayerRepository) SoftDelete(_ context.Context, id, sentBy string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil || item.SentBy != sentBy {
		return false, nil
	}
	now := time.Now().UTC()
	item.DeletedAt = &now
	r.items[id] = item
	return true, nil
}

func cloneRequest(item footplayer.Request) footplayer.Request {
	copied := item
	copied.DeletedAt = cloneTime(item.DeletedAt)
	return copied
}
