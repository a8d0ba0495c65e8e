package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/footmate/internal/domain/location"
)

type LocationRepository struct {
	mu        sync.RWMutex
	countries []location.Country
	states    map[string]location.State
	cities    map[string]location.City
}

func NewLocationRepository(countries []location.Country, states []location.State, cities []location.City) *LocationRepository {
	r := &LocationRepository{
		countries: append([]location.Country(nil), countries...),
		states:    make(map[string]location.State, len(states)),
		cities:    make(map[string]location.City, len(cities)),
	}
	for _, s := range states {
		r.states[s.ID] = s
	}
	for _, c := range cities {
		r.cities[c.ID] = c
	}
	return r
}

func (r *LocationRepository) ListCountries(_ context.Context) ([]location.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]location.Country(nil), r.countries...), nil
}

func (r *LocationRepository) GetCountryByID(_ context.Context, id string) (location.Country, bool, error) {
	return r.findCountry(func(c location.Country) bool { return c.ID == id })
}

func (r *LocationRepository) GetCountryByCode(_ context.Context, code string) (location.Country, bool, error) {
	return r.findCountry(func(c location.Country) bool { return strings.EqualFold(c.SortName, code) })
}

func (r *LocationRepository) findCountry(match func(location.Country) bool) (location.Country, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.countries {
		if match(c) {
			return c, true, nil
		}
	}
	return location.Country{}, false, nil
}

func (r *LocationRepository) ListStates(_ context.Context) ([]location.State, error) {
	return r.filterStates(func(location.State) bool { return true }), nil
}

func (r *LocationRepository) ListStatesByCountry(_ context.Context, countryID string) ([]location.State, error) {
	return r.filterStates(func(s location.State) bool { return s.CountryID == countryID }), nil
}

func (r *LocationRepository) GetStateByID(_ context.Context, id string) (location.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.states[id]
	return s, ok, nil
}

func (r *LocationRepository) CreateState(_ context.Context, state location.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stateSlugTakenLocked(state) {
		return location.ErrStateExists
	}
	r.states[state.ID] = state
	return nil
}

func (r *LocationRepository) UpdateState(_ context.Context, state location.State) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[state.ID]; !ok {
		return false, nil
	}
	if r.stateSlugTakenLocked(state) {
		return false, location.ErrStateExists
	}
	r.states[state.ID] = state
	return true, nil
}

func (r *LocationRepository) ListCities(_ context.Context) ([]location.City, error) {
	return r.filterCities(func(location.City) bool { return true }), nil
}

func (r *LocationRepository) ListCitiesByState(_ context.Context, stateID string) ([]location.City, error) {
	return r.filterCities(func(c location.City) bool { return c.StateID == stateID }), nil
}

func (r *LocationRepository) GetCityByID(_ context.Context, id string) (location.City, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cities[id]
	return c, ok, nil
}

func (r *LocationRepository) CreateCity(_ context.Context, city location.City) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.cities {
		if other.StateID == city.StateID && other.Slug == city.Slug {
			return location.ErrCityExists
		}
	}
	r.cities[city.ID] = city
	return nil
}

func (r *LocationRepository) Stats(_ context.Context) ([]location.CountryStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stateCountry := make(map[string]string, len(r.states))
	out := make([]location.CountryStats, 0, len(r.countries))
	index := make(map[string]int, len(r.countries))
	for _, c := range r.countries {
		index[c.ID] = len(out)
		out = append(out, location.CountryStats{Country: c.Name})
	}
	for _, s := range r.states {
		stateCountry[s.ID] = s.CountryID
		if i, ok := index[s.CountryID]; ok {
			out[i].NoOfState++
		}
	}
	for _, c := range r.cities {
		if i, ok := index[stateCountry[c.StateID]]; ok {
			out[i].NoOfCity++
		}
	}
	return out, nil
}

func (r *LocationRepository) stateSlugTakenLocked(state location.State) bool {
	for id, other := range r.states {
		if id != state.ID && other.CountryID == state.CountryID && other.Slug == state.Slug {
			return true
		}
	}
	return false
}

func (r *LocationRepository) filterStates(match func(location.State) bool) []location.State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]location.State, 0, len(r.states))
	for _, s := range r.states {
		if match(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func (r *LocationRepository) filterCities(match func(location.City) bool) []location.City {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]location.City, 0, len(r.cities))
	for _, c := range r.cities {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
