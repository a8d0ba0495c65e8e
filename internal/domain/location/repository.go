package location

import (
	"context"
	"errors"
)

var (
	ErrStateExists = errors.New("state already exists")
	ErrCityExists  = errors.New("city already exists")
)

// Repository describes location reference data access.
type Repository interface {
	ListCountries(ctx context.Context) ([]Country, error)
	GetCountryByID(ctx context.Context, id string) (Country, bool, error)
	GetCountryByCode(ctx context.Context, code string) (Country, bool, error)

	ListStates(ctx context.Context) ([]State, error)
	ListStatesByCountry(ctx context.Context, countryID string) ([]State, error)
	GetStateByID(ctx context.Context, id string) (State, bool, error)
	// CreateState fails with ErrStateExists when the slug is taken in the country.
	CreateState(ctx context.Context, state State) error
	// UpdateState fails with ErrStateExists when the new slug collides.
	UpdateState(ctx context.Context, state State) (bool, error)

	ListCities(ctx context.Context) ([]City, error)
	ListCitiesByState(ctx context.Context, stateID string) ([]City, error)
	GetCityByID(ctx context.Context, id string) (City, bool, error)
	// CreateCity fails with ErrCityExists when the slug is taken in the state.
	CreateCity(ctx context.Context, city City) error

	Stats(ctx context.Context) ([]CountryStats, error)
}
