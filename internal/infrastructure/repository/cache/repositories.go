package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/footmate/internal/domain/ability"
	"github.com/riskibarqy/footmate/internal/domain/location"
	basecache "github.com/riskibarqy/footmate/internal/platform/cache"
)

// AbilityRepository caches ability and position reference data.
type AbilityRepository struct {
	next  ability.Repository
	cache *basecache.Store
}

func NewAbilityRepository(next ability.Repository, cache *basecache.Store) *AbilityRepository {
	return &AbilityRepository{next: next, cache: cache}
}

func (r *AbilityRepository) List(ctx context.Context) ([]ability.Ability, error) {
	items, err := basecache.Load(ctx, r.cache, "ability:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return cloneAbilities(items), nil
}

func (r *AbilityRepository) ListWithAttributesByIDs(ctx context.Context, ids []string) ([]ability.Ability, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	key := "ability:ids:" + strings.Join(sorted, ",")
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]ability.Ability, error) {
		return r.next.ListWithAttributesByIDs(ctx, sorted)
	})
	if err != nil {
		return nil, err
	}
	return cloneAbilities(items), nil
}

func (r *AbilityRepository) ListPositions(ctx context.Context) ([]ability.Position, error) {
	items, err := basecache.Load(ctx, r.cache, "position:list", r.next.ListPositions)
	if err != nil {
		return nil, err
	}
	out := make([]ability.Position, len(items))
	for i, p := range items {
		p.AbilityIDs = append([]string(nil), p.AbilityIDs...)
		out[i] = p
	}
	return out, nil
}

// LocationRepository caches location reads and invalidates them on writes.
type LocationRepository struct {
	next  location.Repository
	cache *basecache.Store
}

func NewLocationRepository(next location.Repository, cache *basecache.Store) *LocationRepository {
	return &LocationRepository{next: next, cache: cache}
}

type cachedCountry struct {
	value  location.Country
	exists bool
}

type cachedState struct {
	value  location.State
	exists bool
}

type cachedCity struct {
	value  location.City
	exists bool
}

func (r *LocationRepository) ListCountries(ctx context.Context) ([]location.Country, error) {
	items, err := basecache.Load(ctx, r.cache, "location:country:list", r.next.ListCountries)
	return append([]location.Country(nil), items...), err
}

func (r *LocationRepository) GetCountryByID(ctx context.Context, id string) (location.Country, bool, error) {
	return r.country(ctx, "location:country:id:"+id, func(ctx context.Context) (location.Country, bool, error) {
		return r.next.GetCountryByID(ctx, id)
	})
}

func (r *LocationRepository) GetCountryByCode(ctx context.Context, code string) (location.Country, bool, error) {
	return r.country(ctx, "location:country:code:"+code, func(ctx context.Context) (location.Country, bool, error) {
		return r.next.GetCountryByCode(ctx, code)
	})
}

func (r *LocationRepository) country(ctx context.Context, key string, load func(context.Context) (location.Country, bool, error)) (location.Country, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedCountry, error) {
		item, exists, err := load(ctx)
		return cachedCountry{value: item, exists: exists}, err
	})
	if err != nil {
		return location.Country{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LocationRepository) ListStates(ctx context.Context) ([]location.State, error) {
	items, err := basecache.Load(ctx, r.cache, "location:state:list", r.next.ListStates)
	return append([]location.State(nil), items...), err
}

func (r *LocationRepository) ListStatesByCountry(ctx context.Context, countryID string) ([]location.State, error) {
	items, err := basecache.Load(ctx, r.cache, "location:state:list:country:"+countryID, func(ctx context.Context) ([]location.State, error) {
		return r.next.ListStatesByCountry(ctx, countryID)
	})
	return append([]location.State(nil), items...), err
}

func (r *LocationRepository) GetStateByID(ctx context.Context, id string) (location.State, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "location:state:id:"+id, func(ctx context.Context) (cachedState, error) {
		item, exists, err := r.next.GetStateByID(ctx, id)
		return cachedState{value: item, exists: exists}, err
	})
	if err != nil {
		return location.State{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LocationRepository) CreateState(ctx context.Context, state location.State) error {
	if err := r.next.CreateState(ctx, state); err != nil {
		return err
	}
	r.invalidateStates(ctx)
	return nil
}

func (r *LocationRepository) UpdateState(ctx context.Context, state location.State) (bool, error) {
	ok, err := r.next.UpdateState(ctx, state)
	if err != nil {
		return false, err
	}
	r.invalidateStates(ctx)
	return ok, nil
}

func (r *LocationRepository) ListCities(ctx context.Context) ([]location.City, error) {
	items, err := basecache.Load(ctx, r.cache, "location:city:list", r.next.ListCities)
	return append([]location.City(nil), items...), err
}

func (r *LocationRepository) ListCitiesByState(ctx context.Context, stateID string) ([]location.City, error) {
	items, err := basecache.Load(ctx, r.cache, "location:city:list:state:"+stateID, func(ctx context.Context) ([]location.City, error) {
		return r.next.ListCitiesByState(ctx, stateID)
	})
	return append([]location.City(nil), items...), err
}

func (r *LocationRepository) GetCityByID(ctx context.Context, id string) (location.City, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "location:city:id:"+id, func(ctx context.Context) (cachedCity, error) {
		item, exists, err := r.next.GetCityByID(ctx, id)
		return cachedCity{value: item, exists: exists}, err
	})
	if err != nil {
		return location.City{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LocationRepository) CreateCity(ctx context.Context, city location.City) error {
	if err := r.next.CreateCity(ctx, city); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "location:city:")
	r.cache.Delete(ctx, "location:stats")
	return nil
}

func (r *LocationRepository) Stats(ctx context.Context) ([]location.CountryStats, error) {
	items, err := basecache.Load(ctx, r.cache, "location:stats", r.next.Stats)
	return append([]location.CountryStats(nil), items...), err
}

func (r *LocationRepository) invalidateStates(ctx context.Context) {
	r.cache.DeletePrefix(ctx, "location:state:")
	r.cache.Delete(ctx, "location:stats")
}

func cloneAbilities(items []ability.Ability) []ability.Ability {
	out := make([]ability.Ability, len(items))
	for i, a := range items {
		a.Attributes = append([]ability.Attribute(nil), a.Attributes...)
		out[i] = a
	}
	return out
}
