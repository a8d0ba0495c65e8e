package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footmate/internal/domain/location"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

type countryTableModel struct {
	PublicID  string `db:"public_id"`
	Name      string `db:"name"`
	SortName  string `db:"sortname"`
	PhoneCode string `db:"phonecode"`
}

type stateTableModel struct {
	PublicID        string    `db:"public_id"`
	Name            string    `db:"name"`
	Slug            string    `db:"slug"`
	CountryPublicID string    `db:"country_public_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type stateInsertModel struct {
	PublicID        string `db:"public_id"`
	Name            string `db:"name"`
	Slug            string `db:"slug"`
	CountryPublicID string `db:"country_public_id"`
}

type cityTableModel struct {
	PublicID      string    `db:"public_id"`
	Name          string    `db:"name"`
	Slug          string    `db:"slug"`
	StatePublicID string    `db:"state_public_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type cityInsertModel struct {
	PublicID      string `db:"public_id"`
	Name          string `db:"name"`
	Slug          string `db:"slug"`
	StatePublicID string `db:"state_public_id"`
}

type countryStatsModel struct {
	Country   string `db:"country"`
	NoOfState int    `db:"no_of_state"`
	NoOfCity  int    `db:"no_of_city"`
}

const (
	countryColumns = "public_id, name, sortname, phonecode"
	stateColumns   = "public_id, name, slug, country_public_id, created_at, updated_at"
	cityColumns    = "public_id, name, slug, state_public_id, created_at, updated_at"
)

type LocationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListCountries(ctx context.Context) ([]location.Country, error) {
	query, args, err := qb.Select(countryColumns).From("countries").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list countries query: %w", err)
	}
	var rows []countryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	out := make([]location.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, location.Country{ID: row.PublicID, Name: row.Name, SortName: row.SortName, PhoneCode: row.PhoneCode})
	}
	return out, nil
}

func (r *LocationRepository) GetCountryByID(ctx context.Context, id string) (location.Country, bool, error) {
	return r.getCountry(ctx, "get country by id", qb.Eq("public_id", id))
}

func (r *LocationRepository) GetCountryByCode(ctx context.Context, code string) (location.Country, bool, error) {
	return r.getCountry(ctx, "get country by code", qb.Eq("sortname", strings.ToUpper(strings.TrimSpace(code))))
}

func (r *LocationRepository) getCountry(ctx context.Context, op string, cond qb.Condition) (location.Country, bool, error) {
	query, args, err := qb.Select(countryColumns).From("countries").Where(cond).ToSQL()
	if err != nil {
		return location.Country{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row countryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return location.Country{}, false, nil
		}
		return location.Country{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return location.Country{ID: row.PublicID, Name: row.Name, SortName: row.SortName, PhoneCode: row.PhoneCode}, true, nil
}

func (r *LocationRepository) ListStates(ctx context.Context) ([]location.State, error) {
	return r.listStates(ctx, "list states", nil)
}

func (r *LocationRepository) ListStatesByCountry(ctx context.Context, countryID string) ([]location.State, error) {
	return r.listStates(ctx, "list states by country", qb.Eq("country_public_id", countryID))
}

func (r *LocationRepository) listStates(ctx context.Context, op string, cond qb.Condition) ([]location.State, error) {
	query, args, err := qb.Select(stateColumns).From("states").Where(cond).OrderBy("slug").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}
	var rows []stateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]location.State, 0, len(rows))
	for _, row := range rows {
		out = append(out, stateFromRow(row))
	}
	return out, nil
}

func (r *LocationRepository) GetStateByID(ctx context.Context, id string) (location.State, bool, error) {
	query, args, err := qb.Select(stateColumns).From("states").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return location.State{}, false, fmt.Errorf("build get state query: %w", err)
	}
	var row stateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return location.State{}, false, nil
		}
		return location.State{}, false, fmt.Errorf("get state: %w", err)
	}
	return stateFromRow(row), true, nil
}

func (r *LocationRepository) CreateState(ctx context.Context, state location.State) error {
	query, args, err := qb.InsertModel("states", stateInsertModel{
		PublicID:        state.ID,
		Name:            state.Name,
		Slug:            state.Slug,
		CountryPublicID: state.CountryID,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert state query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "ux_states_country_slug") {
			return location.ErrStateExists
		}
		return fmt.Errorf("insert state: %w", err)
	}
	return nil
}

func (r *LocationRepository) UpdateState(ctx context.Context, state location.State) (bool, error) {
	query, args, err := qb.Update("states").
		Set("name", state.Name).
		Set("slug", state.Slug).
		Set("country_public_id", state.CountryID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", state.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update state query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "ux_states_country_slug") {
			return false, location.ErrStateExists
		}
		return false, fmt.Errorf("update state: %w", err)
	}
	return rowsAffected(res, "update state")
}

func (r *LocationRepository) ListCities(ctx context.Context) ([]location.City, error) {
	return r.listCities(ctx, "list cities", nil)
}

func (r *LocationRepository) ListCitiesByState(ctx context.Context, stateID string) ([]location.City, error) {
	return r.listCities(ctx, "list cities by state", qb.Eq("state_public_id", stateID))
}

func (r *LocationRepository) listCities(ctx context.Context, op string, cond qb.Condition) ([]location.City, error) {
	query, args, err := qb.Select(cityColumns).From("cities").Where(cond).OrderBy("slug").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}
	var rows []cityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]location.City, 0, len(rows))
	for _, row := range rows {
		out = append(out, cityFromRow(row))
	}
	return out, nil
}

func (r *LocationRepository) GetCityByID(ctx context.Context, id string) (location.City, bool, error) {
	query, args, err := qb.Select(cityColumns).From("cities").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return location.City{}, false, fmt.Errorf("build get city query: %w", err)
	}
	var row cityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return location.City{}, false, nil
		}
		return location.City{}, false, fmt.Errorf("get city: %w", err)
	}
	return cityFromRow(row), true, nil
}

func (r *LocationRepository) CreateCity(ctx context.Context, city location.City) error {
	query, args, err := qb.InsertModel("cities", cityInsertModel{
		PublicID:      city.ID,
		Name:          city.Name,
		Slug:          city.Slug,
		StatePublicID: city.StateID,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert city query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "ux_cities_state_slug") {
			return location.ErrCityExists
		}
		return fmt.Errorf("insert city: %w", err)
	}
	return nil
}

func (r *LocationRepository) Stats(ctx context.Context) ([]location.CountryStats, error) {
	query, args, err := qb.Select(
		"c.name AS country",
		"COUNT(DISTINCT s.id) AS no_of_state",
		"COUNT(ci.id) AS no_of_city",
	).
		From("countries c LEFT JOIN states s ON s.country_public_id = c.public_id LEFT JOIN cities ci ON ci.state_public_id = s.public_id").
		GroupBy("c.name").
		OrderBy("c.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build location stats query: %w", err)
	}
	var rows []countryStatsModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("location stats: %w", err)
	}
	out := make([]location.CountryStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, location.CountryStats(row))
	}
	return out, nil
}

func stateFromRow(row stateTableModel) location.State {
	return location.State{
		ID:        row.PublicID,
		Name:      row.Name,
		Slug:      row.Slug,
		CountryID: row.CountryPublicID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func cityFromRow(row cityTableModel) location.City {
	return location.City{
		ID:        row.PublicID,
		Name:      row.Name,
		Slug:      row.Slug,
		StateID:   row.StatePublicID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
