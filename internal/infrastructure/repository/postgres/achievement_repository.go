package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footmate/internal/domain/achievement"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

type achievementTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	UserID    string     `db:"user_id"`
	Type      string     `db:"type"`
	Name      string     `db:"name"`
	Year      int        `db:"year"`
	Position  string     `db:"position"`
	MediaURL  string     `db:"media_url"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type achievementInsertModel struct {
	PublicID string `db:"public_id"`
	UserID   string `db:"user_id"`
	Type     string `db:"type"`
	Name     string `db:"name"`
	Year     int    `db:"year"`
	Position string `db:"position"`
	MediaURL string `db:"media_url"`
}

var achievementSortColumns = map[string]string{
	"year":       "year",
	"name":       "name",
	"type":       "type",
	"created_at": "created_at",
}

type AchievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Create(ctx context.Context, item achievement.Achievement) error {
	query, args, err := qb.InsertModel("achievements", achievementInsertModel{
		PublicID: item.ID,
		UserID:   item.UserID,
		Type:     item.Type,
		Name:     item.Name,
		Year:     item.Year,
		Position: item.Position,
		MediaURL: item.MediaURL,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert achievement query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert achievement: %w", err)
	}
	return nil
}

func (r *AchievementRepository) GetByID(ctx context.Context, id string) (achievement.Achievement, bool, error) {
	return r.getOne(ctx, "get achievement by id", qb.Eq("public_id", id), qb.IsNull("deleted_at"))
}

func (r *AchievementRepository) GetByIDIncludingDeleted(ctx context.Context, id string) (achievement.Achievement, bool, error) {
	return r.getOne(ctx, "get achievement by id including deleted", qb.Eq("public_id", id))
}

func (r *AchievementRepository) List(ctx context.Context, filter achievement.ListFilter) ([]achievement.Achievement, error) {
	query, args, err := qb.Select("*").From("achievements").
		Where(qb.Eq("user_id", filter.UserID), qb.IsNull("deleted_at")).
		Apply(
			qb.SortBy(achievementSortColumns, filter.SortBy, filter.Desc(), "year", "public_id"),
			qb.Paginate(filter.Page, filter.Limit),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list achievements query: %w", err)
	}
	var rows []achievementTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	out := make([]achievement.Achievement, 0, len(rows))
	for _, row := range rows {
		out = append(out, achievementFromRow(row))
	}
	return out, nil
}

func (r *AchievementRepository) Count(ctx context.Context, userID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("achievements").
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count achievements query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count achievements: %w", err)
	}
	return total, nil
}

func (r *AchievementRepository) Update(ctx context.Context, item achievement.Achievement) (bool, error) {
	query, args, err := qb.Update("achievements").
		Set("type", item.Type).
		Set("name", item.Name).
		Set("year", item.Year).
		Set("position", item.Position).
		Set("media_url", item.MediaURL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID), qb.Eq("user_id", item.UserID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update achievement query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update achievement: %w", err)
	}
	return rowsAffected(res, "update achievement")
}

func (r *AchievementRepository) SoftDelete(ctx context.Context, userID, id string) (bool, error) {
	query, args, err := qb.Update("achievements").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete achievement query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete achievement: %w", err)
	}
	return rowsAffected(res, "delete achievement")
}

func (r *AchievementRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (achievement.Achievement, bool, error) {
	query, args, err := qb.Select("*").From("achievements").Where(conds...).ToSQL()
	if err != nil {
		return achievement.Achievement{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row achievementTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return achievement.Achievement{}, false, nil
		}
		return achievement.Achievement{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return achievementFromRow(row), true, nil
}

func achievementFromRow(row achievementTableModel) achievement.Achievement {
	return achievement.Achievement{
		ID:        row.PublicID,
		UserID:    row.UserID,
		Type:      row.Type,
		Name:      row.Name,
		Year:      row.Year,
		Position:  row.Position,
		MediaURL:  row.MediaURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		DeletedAt: row.DeletedAt,
	}
}
