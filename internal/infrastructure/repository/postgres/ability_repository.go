package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/footmate/internal/domain/ability"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

type abilityAttributeRowModel struct {
	AbilityID     string         `db:"ability_id"`
	AbilityName   string         `db:"ability_name"`
	AttributeID   sql.NullString `db:"attribute_id"`
	AttributeName sql.NullString `db:"attribute_name"`
}

type positionTableModel struct {
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	Abbreviation string         `db:"abbreviation"`
	AbilityIDs   pq.StringArray `db:"ability_ids"`
}

type AbilityRepository struct {
	db *sqlx.DB
}

func NewAbilityRepository(db *sqlx.DB) *AbilityRepository {
	return &AbilityRepository{db: db}
}

func (r *AbilityRepository) List(ctx context.Context) ([]ability.Ability, error) {
	return r.list(ctx, nil)
}

func (r *AbilityRepository) ListWithAttributesByIDs(ctx context.Context, ids []string) ([]ability.Ability, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, qb.Expr("a.public_id = ANY(?)", pq.Array(ids)))
}

// list loads abilities and their attributes with one LEFT JOIN and folds the
// rows back into abilities in name order.
func (r *AbilityRepository) list(ctx context.Context, cond qb.Condition) ([]ability.Ability, error) {
	query, args, err := qb.Select(
		"a.public_id AS ability_id",
		"a.name AS ability_name",
		"t.public_id AS attribute_id",
		"t.name AS attribute_name",
	).
		From("abilities a LEFT JOIN attributes t ON t.ability_public_id = a.public_id AND t.deleted_at IS NULL").
		Where(qb.IsNull("a.deleted_at"), cond).
		OrderBy("a.name", "a.public_id", "t.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list abilities query: %w", err)
	}
	var rows []abilityAttributeRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list abilities: %w", err)
	}

	out := make([]ability.Ability, 0)
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.AbilityID]
		if !ok {
			i = len(out)
			index[row.AbilityID] = i
			out = append(out, ability.Ability{ID: row.AbilityID, Name: row.AbilityName})
		}
		if row.AttributeID.Valid {
			out[i].Attributes = append(out[i].Attributes, ability.Attribute{
				ID:        row.AttributeID.String,
				AbilityID: row.AbilityID,
				Name:      row.AttributeName.String,
			})
		}
	}
	return out, nil
}

func (r *AbilityRepository) ListPositions(ctx context.Context) ([]ability.Position, error) {
	query, args, err := qb.Select("public_id", "name", "abbreviation", "ability_ids").
		From("positions").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list positions query: %w", err)
	}
	var rows []positionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	out := make([]ability.Position, 0, len(rows))
	for _, row := range rows {
		out = append(out, ability.Position{
			ID:           row.PublicID,
			Name:         row.Name,
			Abbreviation: row.Abbreviation,
			AbilityIDs:   []string(row.AbilityIDs),
		})
	}
	return out, nil
}
