package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/ability"
	"github.com/riskibarqy/footmate/internal/domain/location"
	"github.com/riskibarqy/footmate/internal/domain/paging"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

type StatePage struct {
	Total   int
	Records []location.State
}

// LocationService serves the master reference data: countries, states,
// cities, abilities and positions.
type LocationService struct {
	locations        location.Repository
	abilities        ability.Repository
	defaultCountryID string
	idGen            idgen.Generator
	logger           *logging.Logger
	now              func() time.Time
}

func NewLocationService(locations location.Repository, abilities ability.Repository, defaultCountryID string, idGen idgen.Generator, logger *logging.Logger) *LocationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LocationService{
		locations:        locations,
		abilities:        abilities,
		defaultCountryID: strings.TrimSpace(defaultCountryID),
		idGen:            idGen,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *LocationService) Countries(ctx context.Context) ([]location.Country, error) {
	items, err := s.locations.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return items, nil
}

func (s *LocationService) CountryByID(ctx context.Context, id string) (location.Country, error) {
	return s.country(s.locations.GetCountryByID(ctx, strings.TrimSpace(id)))
}

func (s *LocationService) CountryByCode(ctx context.Context, code string) (location.Country, error) {
	return s.country(s.locations.GetCountryByCode(ctx, strings.ToUpper(strings.TrimSpace(code))))
}

func (s *LocationService) country(item location.Country, exists bool, err error) (location.Country, error) {
	if err != nil {
		return location.Country{}, fmt.Errorf("get country: %w", err)
	}
	if !exists {
		return location.Country{}, notFound(MsgCountryNotFound)
	}
	return item, nil
}

func (s *LocationService) States(ctx context.Context) ([]location.State, error) {
	items, err := s.locations.ListStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	return items, nil
}

func (s *LocationService) StatesByCountry(ctx context.Context, countryID string) ([]location.State, error) {
	items, err := s.locations.ListStatesByCountry(ctx, strings.TrimSpace(countryID))
	if err != nil {
		return nil, fmt.Errorf("list states by country: %w", err)
	}
	return items, nil
}

func (s *LocationService) StateByID(ctx context.Context, id string) (location.State, error) {
	item, exists, err := s.locations.GetStateByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return location.State{}, fmt.Errorf("get state: %w", err)
	}
	if !exists {
		return location.State{}, notFound(MsgStateNotFound)
	}
	return item, nil
}

// StateList pages the states of a country (the default country when empty),
// ordered by name.
func (s *LocationService) StateList(ctx context.Context, countryID string, params paging.Params) (StatePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LocationService.StateList")
	defer span.End()

	countryID = strings.TrimSpace(countryID)
	if countryID == "" {
		countryID = s.defaultCountryID
	}
	var (
		items []location.State
		err   error
	)
	if countryID == "" {
		items, err = s.locations.ListStates(ctx)
	} else {
		items, err = s.locations.ListStatesByCountry(ctx, countryID)
	}
	if err != nil {
		return StatePage{}, fmt.Errorf("list states: %w", err)
	}

	params = params.WithDefaults(defaultPageSize, "name", 1)
	sorted := append([]location.State(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if params.Desc() {
			return sorted[i].Slug > sorted[j].Slug
		}
		return sorted[i].Slug < sorted[j].Slug
	})
	start, end := params.Window(len(sorted))
	return StatePage{Total: len(sorted), Records: sorted[start:end]}, nil
}

func (s *LocationService) AddState(ctx context.Context, countryID, name string) (location.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LocationService.AddState")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return location.State{}, validationFailed("name is required")
	}
	countryID = strings.TrimSpace(countryID)
	if countryID == "" {
		countryID = s.defaultCountryID
	}
	if _, err := s.CountryByID(ctx, countryID); err != nil {
		return location.State{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return location.State{}, fmt.Errorf("generate state id: %w", err)
	}
	now := s.now().UTC()
	state := location.State{
		ID:        id,
		Name:      name,
		Slug:      location.Slugify(name),
		CountryID: countryID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.locations.CreateState(ctx, state); err != nil {
		if errors.Is(err, location.ErrStateExists) {
			return location.State{}, conflict(MsgStateExists)
		}
		return location.State{}, fmt.Errorf("create state: %w", err)
	}
	s.logger.InfoContext(ctx, "state added", "state_id", state.ID, "country_id", countryID)
	return state, nil
}

func (s *LocationService) EditState(ctx context.Context, id, name string) (location.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LocationService.EditState")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return location.State{}, validationFailed("name is required")
	}
	existing, err := s.StateByID(ctx, id)
	if err != nil {
		return location.State{}, err
	}

	updated := existing
	updated.Name = name
	updated.Slug = location.Slugify(name)
	updated.UpdatedAt = s.now().UTC()
	ok, err := s.locations.UpdateState(ctx, updated)
	if err != nil {
		if errors.Is(err, location.ErrStateExists) {
			return location.State{}, conflict(MsgStateExists)
		}
		return location.State{}, fmt.Errorf("update state: %w", err)
	}
	if !ok {
		return location.State{}, notFound(MsgStateNotFound)
	}
	return updated, nil
}

func (s *LocationService) Cities(ctx context.Context) ([]location.City, error) {
	items, err := s.locations.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return items, nil
}

func (s *LocationService) CitiesByState(ctx context.Context, stateID string) ([]location.City, error) {
	items, err := s.locations.ListCitiesByState(ctx, strings.TrimSpace(stateID))
	if err != nil {
		return nil, fmt.Errorf("list cities by state: %w", err)
	}
	return items, nil
}

func (s *LocationService) CityByID(ctx context.Context, id string) (location.City, error) {
	item, exists, err := s.locations.GetCityByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return location.City{}, fmt.Errorf("get city: %w", err)
	}
	if !exists {
		return location.City{}, notFound(MsgCityNotFound)
	}
	return item, nil
}

func (s *LocationService) AddCity(ctx context.Context, stateID, name string) (location.City, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LocationService.AddCity")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return location.City{}, validationFailed("name is required")
	}
	state, err := s.StateByID(ctx, stateID)
	if err != nil {
		return location.City{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return location.City{}, fmt.Errorf("generate city id: %w", err)
	}
	now := s.now().UTC()
	city := location.City{
		ID:        id,
		Name:      name,
		Slug:      location.Slugify(name),
		StateID:   state.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.locations.CreateCity(ctx, city); err != nil {
		if errors.Is(err, location.ErrCityExists) {
			return location.City{}, conflict(MsgCityExists)
		}
		return location.City{}, fmt.Errorf("create city: %w", err)
	}
	return city, nil
}

func (s *LocationService) Stats(ctx context.Context) ([]location.CountryStats, error) {
	items, err := s.locations.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("location stats: %w", err)
	}
	return items, nil
}

func (s *LocationService) Abilities(ctx context.Context) ([]ability.Ability, error) {
	items, err := s.abilities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list abilities: %w", err)
	}
	return items, nil
}

func (s *LocationService) Positions(ctx context.Context) ([]ability.Position, error) {
	items, err := s.abilities.ListPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return items, nil
}
