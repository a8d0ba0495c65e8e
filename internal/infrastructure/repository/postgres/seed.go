package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/footmate/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the reference data (abilities, positions, locations)
// once into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM abilities WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count abilities for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, a := range memory.SeedAbilities() {
		if err := exec("ability "+a.ID, `
INSERT INTO abilities (public_id, name)
VALUES (:public_id, :name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": a.ID,
			"name":      a.Name,
		}); err != nil {
			return err
		}
		for _, attr := range a.Attributes {
			if err := exec("attribute "+attr.ID, `
INSERT INTO attributes (public_id, ability_public_id, name)
VALUES (:public_id, :ability_public_id, :name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":         attr.ID,
				"ability_public_id": a.ID,
				"name":              attr.Name,
			}); err != nil {
				return err
			}
		}
	}

	for _, p := range memory.SeedPositions() {
		if err := exec("position "+p.ID, `
INSERT INTO positions (public_id, name, abbreviation, ability_ids)
VALUES (:public_id, :name, :abbreviation, :ability_ids)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    p.ID,
			"name":         p.Name,
			"abbreviation": p.Abbreviation,
			"ability_ids":  pq.Array(p.AbilityIDs),
		}); err != nil {
			return err
		}
	}

	for _, c := range memory.SeedCountries() {
		if err := exec("country "+c.ID, `
INSERT INTO countries (public_id, name, sortname, phonecode)
VALUES (:public_id, :name, :sortname, :phonecode)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": c.ID,
			"name":      c.Name,
			"sortname":  c.SortName,
			"phonecode": c.PhoneCode,
		}); err != nil {
			return err
		}
	}

	for _, s := range memory.SeedStates() {
		if err := exec("state "+s.ID, `
INSERT INTO states (public_id, name, slug, country_public_id)
VALUES (:public_id, :name, :slug, :country_public_id)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":         s.ID,
			"name":              s.Name,
			"slug":              s.Slug,
			"country_public_id": s.CountryID,
		}); err != nil {
			return err
		}
	}

	for _, c := range memory.SeedCities() {
		if err := exec("city "+c.ID, `
INSERT INTO cities (public_id, name, slug, state_public_id)
VALUES (:public_id, :name, :slug, :state_public_id)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":       c.ID,
			"name":            c.Name,
			"slug":            c.Slug,
			"state_public_id": c.StateID,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
