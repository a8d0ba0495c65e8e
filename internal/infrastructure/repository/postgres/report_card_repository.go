package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footmate/internal/domain/reportcard"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

type ReportCardRepository struct {
	db *sqlx.DB
}

func NewReportCardRepository(db *sqlx.DB) *ReportCardRepository {
	return &ReportCardRepository{db: db}
}

func (r *ReportCardRepository) Create(ctx context.Context, card reportcard.ReportCard) error {
	abilities, err := sonic.Marshal(card.Abilities)
	if err != nil {
		return fmt.Errorf("encode report card abilities: %w", err)
	}
	query, args, err := qb.InsertInto("report_cards").
		Columns("public_id", "sent_by", "send_to", "status", "abilities", "remarks", "published_at").
		Values(card.ID, card.SentBy, card.SendTo, string(card.Status), string(abilities), card.Remarks, card.PublishedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert report card query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "ux_report_cards_draft_pair") {
			return reportcard.ErrDraftExists
		}
		return fmt.Errorf("insert report card: %w", err)
	}
	return nil
}

func (r *ReportCardRepository) GetByID(ctx context.Context, id string) (reportcard.ReportCard, bool, error) {
	return r.getOne(ctx, "get report card by id", qb.Eq("public_id", id))
}

func (r *ReportCardRepository) GetBySender(ctx context.Context, sentBy, id string) (reportcard.ReportCard, bool, error) {
	return r.getOne(ctx, "get report card by sender", qb.Eq("public_id", id), qb.Eq("sent_by", sentBy))
}

func (r *ReportCardRepository) GetDraft(ctx context.Context, sentBy, sendTo string) (reportcard.ReportCard, bool, error) {
	return r.getOne(ctx, "get draft report card",
		qb.Eq("sent_by", sentBy),
		qb.Eq("send_to", sendTo),
		qb.Eq("status", string(reportcard.StatusDraft)),
	)
}

func (r *ReportCardRepository) UpdateDraft(ctx context.Context, card reportcard.ReportCard) (bool, error) {
	abilities, err := sonic.Marshal(card.Abilities)
	if err != nil {
		return false, fmt.Errorf("encode report card abilities: %w", err)
	}
	query, args, err := qb.Update("report_cards").
		Set("status", string(card.Status)).
		SetExpr("abilities", "?::jsonb", string(abilities)).
		Set("remarks", card.Remarks).
		Set("published_at", card.PublishedAt).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", card.ID),
			qb.Eq("sent_by", card.SentBy),
			qb.Eq("status", string(reportcard.StatusDraft)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update report card query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update report card: %w", err)
	}
	return rowsAffected(res, "update report card")
}

func (r *ReportCardRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (reportcard.ReportCard, bool, error) {
	query, args, err := qb.Select("*").From("report_cards").
		Where(append(conds, qb.IsNull("deleted_at"))...).
		ToSQL()
	if err != nil {
		return reportcard.ReportCard{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row reportCardTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return reportcard.ReportCard{}, false, nil
		}
		return reportcard.ReportCard{}, false, fmt.Errorf("%s: %w", op, err)
	}
	card, err := reportCardFromRow(row)
	if err != nil {
		return reportcard.ReportCard{}, false, fmt.Errorf("decode report card: %w", err)
	}
	return card, true, nil
}
