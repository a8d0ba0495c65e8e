package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footmate/internal/domain/reportcard"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

// ReportCardQueryRepository serves the report card list views. Each view is a
// subquery source; filters are stages shared by the list and count queries.
type ReportCardQueryRepository struct {
	db *sqlx.DB
}

func NewReportCardQueryRepository(db *sqlx.DB) *ReportCardQueryRepository {
	return &ReportCardQueryRepository{db: db}
}

// managedSource has one row per added footplayer of the sender. Totals and the
// latest card cover every sender; the draft join is the sender's own.
const managedSource = `(
	SELECT p.user_id,
		TRIM(p.first_name || ' ' || p.last_name) AS name,
		p.first_name, p.last_name,
		p.player_type AS category,
		p.avatar_url,
		COALESCE(stats.total, 0) AS total_report_cards,
		CASE WHEN d.public_id IS NOT NULL THEN 'draft' ELSE COALESCE(latest.status, '') END AS status,
		COALESCE(d.public_id, '') AS draft_id,
		latest.published_at,
		latest.created_at
	FROM foot_players f
	JOIN player_details p ON p.user_id = f.send_to_user_id AND p.deleted_at IS NULL
	LEFT JOIN LATERAL (
		SELECT COUNT(*) AS total FROM report_cards rc
		WHERE rc.send_to = f.send_to_user_id
			AND rc.status <> 'draft' AND rc.deleted_at IS NULL
	) stats ON TRUE
	LEFT JOIN LATERAL (
		SELECT rc.status, rc.published_at, rc.created_at FROM report_cards rc
		WHERE rc.send_to = f.send_to_user_id
			AND rc.status <> 'draft' AND rc.deleted_at IS NULL
		ORDER BY rc.published_at DESC NULLS LAST, rc.created_at DESC
		LIMIT 1
	) latest ON TRUE
	LEFT JOIN report_cards d ON d.sent_by = f.sent_by AND d.send_to = f.send_to_user_id
		AND d.status = 'draft' AND d.deleted_at IS NULL
	WHERE f.sent_by = ? AND f.status = 'added' AND f.deleted_at IS NULL
) AS managed`

var managedSortColumns = map[string]string{
	"name":               "name",
	"category":           "category",
	"total_report_cards": "total_report_cards",
	"status":             "status",
	"published_at":       "published_at",
	"created_at":         "created_at",
}

func managedFilters(filter reportcard.ManagedFilter) qb.Stage {
	var conds []qb.Condition
	if filter.From != nil {
		conds = append(conds, qb.Gte("published_at", *filter.From))
	}
	if filter.To != nil {
		conds = append(conds, qb.Lte("published_at", *filter.To))
	}
	conds = append(conds,
		anyFold("category", filter.PlayerCategory),
		anyFold("status", filter.Status),
	)
	if filter.Search != "" {
		conds = append(conds, qb.ILike("name", filter.Search))
	}
	return qb.Filter(conds...)
}

func (r *ReportCardQueryRepository) ListManaged(ctx context.Context, filter reportcard.ManagedFilter) ([]reportcard.ManagedRow, error) {
	query, args, err := qb.Select("*").From(managedSource, filter.SentBy).
		Apply(
			managedFilters(filter),
			qb.SortBy(managedSortColumns, filter.SortBy, filter.Desc(), "name", "user_id"),
			qb.Paginate(filter.Page, filter.Limit),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list managed report cards query: %w", err)
	}
	var rows []managedRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list managed report cards: %w", err)
	}
	out := make([]reportcard.ManagedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, reportcard.ManagedRow(row))
	}
	return out, nil
}

func (r *ReportCardQueryRepository) CountManaged(ctx context.Context, filter reportcard.ManagedFilter) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(managedSource, filter.SentBy).
		Apply(managedFilters(filter)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count managed report cards query: %w", err)
	}
	return r.count(ctx, "count managed report cards", query, args)
}

const playerCardsSource = `(
	SELECT rc.public_id AS id, rc.sent_by, c.name, c.member_type AS created_by,
		rc.published_at, rc.created_at
	FROM report_cards rc
	JOIN club_academy_details c ON c.user_id = rc.sent_by
	WHERE rc.send_to = ? AND rc.status = 'published' AND rc.deleted_at IS NULL
) AS player_cards`

var playerCardSortColumns = map[string]string{
	"name":         "name",
	"created_by":   "created_by",
	"published_at": "published_at",
	"created_at":   "created_at",
}

func playerCardFilters(filter reportcard.PlayerFilter) qb.Stage {
	var conds []qb.Condition
	if filter.From != nil {
		conds = append(conds, qb.Gte("published_at", *filter.From))
	}
	if filter.To != nil {
		conds = append(conds, qb.Lte("published_at", *filter.To))
	}
	conds = append(conds,
		anyFold("name", filter.Name),
		anyFold("created_by", filter.CreatedBy),
	)
	if filter.Search != "" {
		conds = append(conds, qb.ILike("name", filter.Search))
	}
	return qb.Filter(conds...)
}

func (r *ReportCardQueryRepository) ListForPlayer(ctx context.Context, filter reportcard.PlayerFilter) ([]reportcard.PlayerRow, error) {
	query, args, err := qb.Select("*").From(playerCardsSource, filter.SendTo).
		Apply(
			playerCardFilters(filter),
			qb.SortBy(playerCardSortColumns, filter.SortBy, filter.Desc(), "published_at", "id"),
			qb.Paginate(filter.Page, filter.Limit),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player report cards query: %w", err)
	}
	var rows []playerCardRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player report cards: %w", err)
	}
	out := make([]reportcard.PlayerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, reportcard.PlayerRow(row))
	}
	return out, nil
}

func (r *ReportCardQueryRepository) CountForPlayer(ctx context.Context, filter reportcard.PlayerFilter) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(playerCardsSource, filter.SendTo).
		Apply(playerCardFilters(filter)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player report cards query: %w", err)
	}
	return r.count(ctx, "count player report cards", query, args)
}

// managedPlayerSource lists the player's non-draft cards plus the sender's
// own draft.
const managedPlayerSource = `(
	SELECT rc.public_id AS id, rc.sent_by, rc.status,
		COALESCE(c.name, '') AS created_by,
		rc.published_at, rc.created_at
	FROM report_cards rc
	LEFT JOIN club_academy_details c ON c.user_id = rc.sent_by
	WHERE rc.send_to = ? AND rc.deleted_at IS NULL
		AND (rc.status <> 'draft' OR rc.sent_by = ?)
) AS managed_player_cards`

var managedPlayerSortColumns = map[string]string{
	"created_at":   "created_at",
	"published_at": "published_at",
	"status":       "status",
}

func (r *ReportCardQueryRepository) ListManagedPlayer(ctx context.Context, filter reportcard.ManagedPlayerFilter) ([]reportcard.ManagedPlayerRow, error) {
	query, args, err := qb.Select("*").From(managedPlayerSource, filter.PlayerID, filter.SentBy).
		Apply(
			qb.SortBy(managedPlayerSortColumns, filter.SortBy, filter.Desc(), "created_at", "id"),
			qb.Paginate(filter.Page, filter.Limit),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list managed player report cards query: %w", err)
	}
	var rows []managedPlayerRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list managed player report cards: %w", err)
	}
	out := make([]reportcard.ManagedPlayerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, reportcard.ManagedPlayerRow{
			ID:          row.ID,
			SentBy:      row.SentBy,
			Status:      reportcard.Status(row.Status),
			CreatedBy:   row.CreatedBy,
			PublishedAt: row.PublishedAt,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

func (r *ReportCardQueryRepository) CountManagedPlayer(ctx context.Context, filter reportcard.ManagedPlayerFilter) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(managedPlayerSource, filter.PlayerID, filter.SentBy).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count managed player report cards query: %w", err)
	}
	return r.count(ctx, "count managed player report cards", query, args)
}

func (r *ReportCardQueryRepository) count(ctx context.Context, op, query string, args []any) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
