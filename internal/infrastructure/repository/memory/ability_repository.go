package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/footmate/internal/domain/ability"
)

type AbilityRepository struct {
	mu        sync.RWMutex
	abilities []ability.Ability
	positions []ability.Position
}

func NewAbilityRepository(abilities []ability.Ability, positions []ability.Position) *AbilityRepository {
	return &AbilityRepository{
		abilities: cloneAbilities(abilities),
		positions: clonePositions(positions),
	}
}

func (r *AbilityRepository) List(_ context.Context) ([]ability.Ability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAbilities(r.abilities), nil
}

func (r *AbilityRepository) ListWithAttributesByIDs(_ context.Context, ids []string) ([]ability.Ability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]ability.Ability, 0, len(ids))
	for _, a := range r.abilities {
		if _, ok := wanted[a.ID]; ok {
			out = append(out, a)
		}
	}
	return cloneAbilities(out), nil
}

func (r *AbilityRepository) ListPositions(_ context.Context) ([]ability.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clonePositions(r.positions), nil
}

func cloneAbilities(items []ability.Ability) []ability.Ability {
	out := make([]ability.Ability, len(items))
	for i, a := range items {
		a.Attributes = append([]ability.Attribute(nil), a.Attributes...)
		out[i] = a
	}
	return out
}

func clonePositions(items []ability.Position) []ability.Position {
	out := make([]ability.Position, len(items))
	for i, p := range items {
		p.AbilityIDs = append([]string(nil), p.AbilityIDs...)
		out[i] = p
	}
	return out
}
