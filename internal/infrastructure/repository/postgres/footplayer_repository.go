package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footmate/internal/domain/footplayer"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

type FootplayerRepository struct {
	db *sqlx.DB
}

func NewFootplayerRepository(db *sqlx.DB) *FootplayerRepository {
	return &FootplayerRepository{db: db}
}

func (r *FootplayerRepository) Create(ctx context.Context, item footplayer.Request) error {
	query, args, err := qb.InsertModel("foot_players", footplayerInsertModel{
		PublicID:        item.ID,
		SentBy:          item.SentBy,
		SendToUserID:    item.SendTo.UserID,
		SendToFirstName: item.SendTo.FirstName,
		SendToLastName:  item.SendTo.LastName,
		SendToEmail:     item.SendTo.Email,
		SendToPhone:     item.SendTo.Phone,
		Status:          string(item.Status),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert footplayer query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "ux_foot_players_live_pair") {
			return footplayer.ErrRequestExists
		}
		return fmt.Errorf("insert footplayer: %w", err)
	}
	return nil
}

func (r *FootplayerRepository) GetByID(ctx context.Context, id string) (footplayer.Request, bool, error) {
	return r.getOne(ctx, "get footplayer by id", qb.Eq("public_id", id), qb.IsNull("deleted_at"))
}

func (r *FootplayerRepository) GetByIDIncludingDeleted(ctx context.Context, id string) (footplayer.Request, bool, error) {
	return r.getOne(ctx, "get footplayer by id including deleted", qb.Eq("public_id", id))
}

func (r *FootplayerRepository) FindLink(ctx context.Context, sentBy, playerUserID string) (footplayer.Request, bool, error) {
	return r.getOne(ctx, "find footplayer link",
		qb.Eq("sent_by", sentBy),
		qb.Eq("send_to_user_id", playerUserID),
		qb.IsNull("deleted_at"),
	)
}

func (r *FootplayerRepository) UpdateStatus(ctx context.Context, id, playerUserID string, from, to footplayer.Status) (bool, error) {
	query, args, err := qb.Update("foot_players").
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.Eq("send_to_user_id", playerUserID),
			qb.Eq("status", string(from)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update footplayer status query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update footplayer status: %w", err)
	}
	return rowsAffected(res, "update footplayer status")
}

func (r *FootplayerRepository) SoftDelete(ctx context.Context, id, sentBy string) (bool, error) {
	query, args, err := qb.Update("foot_players").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.Eq("sent_by", sentBy), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete footplayer query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete footplayer: %w", err)
	}
	return rowsAffected(res, "delete footplayer")
}

func (r *FootplayerRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (footplayer.Request, bool, error) {
	query, args, err := qb.Select("*").From("foot_players").Where(conds...).ToSQL()
	if err != nil {
		return footplayer.Request{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row footplayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return footplayer.Request{}, false, nil
		}
		return footplayer.Request{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return footplayerFromRow(row), true, nil
}

// footplayerListSource joins the sender's live requests with the player
// profile. The priority-2 position is exposed for search only.
const footplayerListSource = `(
	SELECT f.public_id, f.status, f.created_at, f.send_to_user_id AS user_id,
		p.first_name, p.last_name,
		TRIM(p.first_name || ' ' || p.last_name) AS full_name,
		p.email, p.phone, p.avatar_url, p.player_type,
		COALESCE((
			SELECT pos->>'name' FROM jsonb_array_elements(p.positions) pos
			WHERE (pos->>'priority')::int = 1 LIMIT 1
		), '') AS position,
		COALESCE((
			SELECT pos->>'name' FROM jsonb_array_elements(p.positions) pos
			WHERE (pos->>'priority')::int = 2 LIMIT 1
		), '') AS secondary_position
	FROM foot_players f
	JOIN player_details p ON p.user_id = f.send_to_user_id AND p.deleted_at IS NULL
	WHERE f.sent_by = ? AND f.deleted_at IS NULL
) AS footplayers`

const footplayerListColumns = "public_id, status, user_id, first_name, last_name, full_name, email, phone, avatar_url, position, player_type"

var footplayerSortColumns = map[string]string{
	"created_at":  "created_at",
	"name":        "full_name",
	"status":      "status",
	"player_type": "player_type",
}

func footplayerSearch(search string) qb.Stage {
	if search == "" {
		return nil
	}
	return qb.Filter(qb.Or(
		qb.ILike("first_name", search),
		qb.ILike("last_name", search),
		qb.ILike("full_name", search),
		qb.ILike("player_type", search),
		qb.ILike("secondary_position", search),
	))
}

func (r *FootplayerRepository) List(ctx context.Context, filter footplayer.ListFilter) ([]footplayer.ListRow, error) {
	query, args, err := qb.Select(footplayerListColumns).From(footplayerListSource, filter.SentBy).
		Apply(
			footplayerSearch(filter.Search),
			qb.SortBy(footplayerSortColumns, filter.SortBy, filter.Desc(), "created_at", "public_id"),
			qb.Paginate(filter.Page, filter.Limit),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list footplayers query: %w", err)
	}
	var rows []footplayerListRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list footplayers: %w", err)
	}
	out := make([]footplayer.ListRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, footplayerListRowFromModel(row))
	}
	return out, nil
}

func (r *FootplayerRepository) Count(ctx context.Context, filter footplayer.ListFilter) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(footplayerListSource, filter.SentBy).
		Apply(footplayerSearch(filter.Search)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count footplayers query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count footplayers: %w", err)
	}
	return total, nil
}
