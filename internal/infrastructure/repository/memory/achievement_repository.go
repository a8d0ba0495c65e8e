package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/achievement"
)

type AchievementRepository struct {
	mu    sync.RWMutex
	items map[string]achievement.Achievement
}

func NewAchievementRepository() *AchievementRepository {
	return &AchievementRepository{items: make(map[string]achievement.Achievement)}
}

func (r *AchievementRepository) Create(_ context.Context, item achievement.Achievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneAchievement(item)
	return nil
}

func (r *AchievementRepository) GetByID(ctx context.Context, id string) (achievement.Achievement, bool, error) {
	item, ok, err := r.GetByIDIncludingDeleted(ctx, id)
	if err != nil || !ok || item.DeletedAt != nil {
		return achievement.Achievement{}, false, err
	}
	return item, true, nil
}

func (r *AchievementRepository) GetByIDIncludingDeleted(_ context.Context, id string) (achievement.Achievement, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return achievement.Achievement{}, false, nil
	}
	return cloneAchievement(item), true, nil
}

func (r *AchievementRepository) List(_ context.Context, filter achievement.ListFilter) ([]achievement.Achievement, error) {
	items := r.live(filter.UserID)
	sort.SliceStable(items, func(i, j int) bool {
		if filter.Desc() {
			return achievementLess(items[j], items[i], filter.SortBy)
		}
		return achievementLess(items[i], items[j], filter.SortBy)
	})
	start, end := filter.Window(len(items))
	return items[start:end], nil
}

func (r *AchievementRepository) Count(_ context.Context, userID string) (int, error) {
	return len(r.live(userID)), nil
}

func (r *AchievementRepository) Update(_ context.Context, item achievement.Achievement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok || existing.DeletedAt != nil || existing.UserID != item.UserID {
		return false, nil
	}
	r.items[item.ID] = cloneAchievement(item)
	return true, nil
}

func (r *AchievementRepository) SoftDelete(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil || item.UserID != userID {
		return false, nil
	}
	now := time.Now().UTC()
	item.DeletedAt = &now
	r.items[id] = item
	return true, nil
}

func (r *AchievementRepository) live(userID string) []achievement.Achievement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]achievement.Achievement, 0)
	for _, item := range r.items {
		if item.DeletedAt == nil && item.UserID == userID {
			out = append(out, cloneAchievement(item))
		}
	}
	return out
}

func achievementLess(a, b achievement.Achievement, sortBy string) bool {
	switch sortBy {
	case "name":
		if !strings.EqualFold(a.Name, b.Name) {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "created_at":
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	default:
		if a.Year != b.Year {
			return a.Year < b.Year
		}
	}
	return a.ID < b.ID
}

func cloneAchievement(item achievement.Achievement) achievement.Achievement {
	copied := item
	copied.DeletedAt = cloneTime(item.DeletedAt)
	return copied
}
