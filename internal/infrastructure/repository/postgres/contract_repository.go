package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footmate/internal/domain/contract"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

const (
	constraintActivePlayer = "ux_employment_contracts_active_player"
	constraintPendingPair  = "ux_employment_contracts_pending_pair"
)

type ContractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create serialises writers per player with a transaction-scoped advisory
// lock; the pending pair is additionally covered by a partial unique index.
func (r *ContractRepository) Create(ctx context.Context, item contract.EmploymentContract) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create contract: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockPlayer(ctx, tx, item.PlayerEmail); err != nil {
		return err
	}
	active, err := hasActiveContract(ctx, tx, item.PlayerEmail)
	if err != nil {
		return err
	}
	if active {
		return contract.ErrActiveContractExists
	}

	query, args, err := qb.InsertModel("employment_contracts", contractInsertModel{
		PublicID:         item.ID,
		SentBy:           item.SentBy,
		SendTo:           item.SendTo,
		Category:         string(item.Category),
		ClubAcademyName:  item.ClubAcademyName,
		ClubAcademyEmail: item.ClubAcademyEmail,
		ClubAcademyPhone: item.ClubAcademyPhone,
		PlayerName:       item.PlayerName,
		PlayerEmail:      item.PlayerEmail,
		PlayerPhone:      item.PlayerPhone,
		OtherName:        item.OtherName,
		OtherEmail:       item.OtherEmail,
		OtherPhoneNumber: item.OtherPhoneNumber,
		EffectiveDate:    item.EffectiveDate,
		ExpiryDate:       item.ExpiryDate,
		PlaceOfSignature: item.PlaceOfSignature,
		DateOfSigning:    item.DateOfSigning,
		Status:           string(item.Status),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert contract query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, constraintPendingPair) {
			return contract.ErrPendingContractExists
		}
		return fmt.Errorf("insert contract: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create contract tx: %w", err)
	}
	return nil
}

const openContractsQuery = `SELECT
	COALESCE(BOOL_OR(status = 'active'), FALSE),
	COALESCE(BOOL_OR(status = 'pending' AND LOWER(club_academy_email) = LOWER($2)), FALSE)
FROM employment_contracts
WHERE LOWER(player_email) = LOWER($1) AND deleted_at IS NULL`

func (r *ContractRepository) CheckOpen(ctx context.Context, playerEmail, clubAcademyEmail string) error {
	var active, pending bool
	if err := r.db.QueryRowxContext(ctx, openContractsQuery, playerEmail, clubAcademyEmail).Scan(&active, &pending); err != nil {
		return fmt.Errorf("check open contracts: %w", err)
	}
	switch {
	case active:
		return contract.ErrActiveContractExists
	case pending:
		return contract.ErrPendingContractExists
	}
	return nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id string) (contract.EmploymentContract, bool, error) {
	return r.getOne(ctx, "get contract by id", qb.Eq("public_id", id))
}

func (r *ContractRepository) GetBySender(ctx context.Context, sentBy, id string) (contract.EmploymentContract, bool, error) {
	return r.getOne(ctx, "get contract by sender", qb.Eq("public_id", id), qb.Eq("sent_by", sentBy))
}

func (r *ContractRepository) ListByParty(ctx context.Context, userID string) ([]contract.EmploymentContract, error) {
	query, args, err := qb.Select("*").From("employment_contracts").
		Where(
			qb.Or(qb.Eq("sent_by", userID), qb.Eq("send_to", userID)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contracts query: %w", err)
	}
	var rows []contractTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	out := make([]contract.EmploymentContract, 0, len(rows))
	for _, row := range rows {
		out = append(out, contractFromRow(row))
	}
	return out, nil
}

func (r *ContractRepository) UpdateModifiable(ctx context.Context, item contract.EmploymentContract) (bool, error) {
	query, args, err := qb.Update("employment_contracts").
		Set("send_to", item.SendTo).
		Set("category", string(item.Category)).
		Set("club_academy_name", item.ClubAcademyName).
		Set("club_academy_email", item.ClubAcademyEmail).
		Set("club_academy_phone", item.ClubAcademyPhone).
		Set("player_name", item.PlayerName).
		Set("player_email", item.PlayerEmail).
		Set("player_phone", item.PlayerPhone).
		Set("other_name", item.OtherName).
		Set("other_email", item.OtherEmail).
		Set("other_phone_number", item.OtherPhoneNumber).
		Set("effective_date", item.EffectiveDate).
		Set("expiry_date", item.ExpiryDate).
		Set("place_of_signature", item.PlaceOfSignature).
		Set("date_of_signing", item.DateOfSigning).
		Set("remarks", "").
		Set("status", string(item.Status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.Eq("sent_by", item.SentBy),
			qb.In("status", []any{string(contract.StatusPending), string(contract.StatusDisapproved)}),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update contract query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, constraintPendingPair) {
			return false, contract.ErrPendingContractExists
		}
		return false, fmt.Errorf("update contract: %w", err)
	}
	return rowsAffected(res, "update contract")
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, sendTo, id string, status contract.Status, remarks string) (contract.EmploymentContract, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return contract.EmploymentContract{}, false, fmt.Errorf("begin tx update contract status: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("*").From("employment_contracts").
		Where(
			qb.Eq("public_id", id),
			qb.Eq("send_to", sendTo),
			qb.Eq("status", string(contract.StatusPending)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return contract.EmploymentContract{}, false, fmt.Errorf("build get pending contract query: %w", err)
	}
	var row contractTableModel
	if err := tx.GetContext(ctx, &row, query+" FOR UPDATE", args...); err != nil {
		if isNotFound(err) {
			return contract.EmploymentContract{}, false, nil
		}
		return contract.EmploymentContract{}, false, fmt.Errorf("get pending contract: %w", err)
	}

	if status == contract.StatusActive {
		if err := lockPlayer(ctx, tx, row.PlayerEmail); err != nil {
			return contract.EmploymentContract{}, false, err
		}
	}

	update, updateArgs, err := qb.Update("employment_contracts").
		Set("status", string(status)).
		Set("remarks", remarks).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", row.ID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return contract.EmploymentContract{}, false, fmt.Errorf("build update contract status query: %w", err)
	}
	var updated contractTableModel
	if err := tx.GetContext(ctx, &updated, update, updateArgs...); err != nil {
		if isUniqueViolation(err, constraintActivePlayer) {
			return contract.EmploymentContract{}, false, contract.ErrActiveContractExists
		}
		return contract.EmploymentContract{}, false, fmt.Errorf("update contract status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return contract.EmploymentContract{}, false, fmt.Errorf("commit update contract status tx: %w", err)
	}
	return contractFromRow(updated), true, nil
}

func (r *ContractRepository) SoftDeleteModifiable(ctx context.Context, sentBy, id string) (bool, error) {
	query, args, err := qb.Update("employment_contracts").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.Eq("sent_by", sentBy),
			qb.In("status", []any{string(contract.StatusPending), string(contract.StatusDisapproved)}),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete contract query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete contract: %w", err)
	}
	return rowsAffected(res, "delete contract")
}

func (r *ContractRepository) CompleteExpired(ctx context.Context, today time.Time) (int, error) {
	query, args, err := qb.Update("employment_contracts").
		Set("status", string(contract.StatusCompleted)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("status", string(contract.StatusActive)),
			qb.Expr("expiry_date < ?", today),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build complete expired contracts query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("complete expired contracts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("complete expired contracts rows affected: %w", err)
	}
	return int(n), nil
}

func (r *ContractRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (contract.EmploymentContract, bool, error) {
	query, args, err := qb.Select("*").From("employment_contracts").
		Where(append(conds, qb.IsNull("deleted_at"))...).
		ToSQL()
	if err != nil {
		return contract.EmploymentContract{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row contractTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contract.EmploymentContract{}, false, nil
		}
		return contract.EmploymentContract{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return contractFromRow(row), true, nil
}

func lockPlayer(ctx context.Context, tx *sqlx.Tx, playerEmail string) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(LOWER($1)))", playerEmail); err != nil {
		return fmt.Errorf("lock player contracts: %w", err)
	}
	return nil
}

func hasActiveContract(ctx context.Context, tx *sqlx.Tx, playerEmail string) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("employment_contracts").
		Where(
			qb.Expr("LOWER(player_email) = LOWER(?)", playerEmail),
			qb.Eq("status", string(contract.StatusActive)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build active contract query: %w", err)
	}
	var total int
	if err := tx.GetContext(ctx, &total, query, args...); err != nil {
		return false, fmt.Errorf("check active contract: %w", err)
	}
	return total > 0, nil
}
