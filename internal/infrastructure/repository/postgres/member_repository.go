package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
	qb "github.com/riskibarqy/footmate/internal/platform/querybuilder"
)

type LoginRepository struct {
	db *sqlx.DB
}

func NewLoginRepository(db *sqlx.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

func (r *LoginRepository) Register(ctx context.Context, login user.Login, profile user.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx register member: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	loginQuery, loginArgs, err := qb.InsertModel("login_details", loginInsertModel{
		UserID:              login.UserID,
		Username:            login.Username,
		PasswordHash:        nullString(login.PasswordHash),
		Status:              string(login.Status),
		MemberType:          string(login.MemberType),
		Role:                string(login.Role),
		ProfileStatus:       string(login.ProfileStatus),
		IsEmailVerified:     login.IsEmailVerified,
		IsFirstTimeLogin:    login.IsFirstTimeLogin,
		ForgotPasswordToken: nullString(login.ForgotPasswordToken),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert login query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, loginQuery, loginArgs...); err != nil {
		if isUniqueViolation(err, "ux_login_details_username_live") {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("insert login: %w", err)
	}

	var (
		table string
		model any
	)
	switch p := profile.(type) {
	case player.Profile:
		table = "player_details"
		model = playerInsertModel{
			UserID:    p.UserID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Phone:     p.Phone,
			Email:     p.Email,
			State:     p.State,
			Country:   p.Country,
		}
	case clubacademy.Profile:
		table = "club_academy_details"
		model = clubAcademyInsertModel{
			UserID:     p.UserID,
			Name:       p.Name,
			MemberType: string(p.MemberType),
			Email:      p.Email,
			Phone:      p.Phone,
			State:      p.State,
			Country:    p.Country,
		}
	default:
		return fmt.Errorf("register member: unsupported profile %T", profile)
	}
	profileQuery, profileArgs, err := qb.InsertModel(table, model, "")
	if err != nil {
		return fmt.Errorf("build insert profile query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, profileQuery, profileArgs...); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit register member tx: %w", err)
	}
	return nil
}

func (r *LoginRepository) GetByUserID(ctx context.Context, userID string) (user.Login, bool, error) {
	return r.getOne(ctx, "get login by user id", qb.Eq("user_id", userID), qb.IsNull("deleted_at"))
}

func (r *LoginRepository) GetByUserIDIncludingDeleted(ctx context.Context, userID string) (user.Login, bool, error) {
	return r.getOne(ctx, "get login by user id including deleted", qb.Eq("user_id", userID))
}

func (r *LoginRepository) GetByUsername(ctx context.Context, username string) (user.Login, bool, error) {
	return r.getOne(ctx, "get login by username", qb.Expr("LOWER(username) = LOWER(?)", username), qb.IsNull("deleted_at"))
}

func (r *LoginRepository) GetByResetToken(ctx context.Context, token string) (user.Login, bool, error) {
	if token == "" {
		return user.Login{}, false, nil
	}
	return r.getOne(ctx, "get login by reset token", qb.Eq("forgot_password_token", token), qb.IsNull("deleted_at"))
}

func (r *LoginRepository) Update(ctx context.Context, login user.Login) error {
	query, args, err := qb.Update("login_details").
		Set("password_hash", nullString(login.PasswordHash)).
		Set("status", string(login.Status)).
		Set("profile_status", string(login.ProfileStatus)).
		Set("profile_remarks", login.ProfileRemarks).
		Set("is_email_verified", login.IsEmailVerified).
		Set("is_first_time_login", login.IsFirstTimeLogin).
		Set("forgot_password_token", nullString(login.ForgotPasswordToken)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", login.UserID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update login query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update login: %w", err)
	}
	return nil
}

func (r *LoginRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (user.Login, bool, error) {
	query, args, err := qb.Select("*").From("login_details").Where(conds...).ToSQL()
	if err != nil {
		return user.Login{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row loginTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Login{}, false, nil
		}
		return user.Login{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return loginFromRow(row), true, nil
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByUserID(ctx context.Context, userID string) (player.Profile, bool, error) {
	return r.getOne(ctx, "get player by user id", qb.Eq("user_id", userID))
}

func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (player.Profile, bool, error) {
	return r.getOne(ctx, "get player by email", qb.Expr("LOWER(email) = LOWER(?)", email))
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Profile) error {
	positions, err := sonic.Marshal(p.Positions)
	if err != nil {
		return fmt.Errorf("encode player positions: %w", err)
	}
	query, args, err := qb.Update("player_details").
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("player_type", string(p.PlayerType)).
		Set("dob", p.DOB).
		Set("phone", p.Phone).
		Set("avatar_url", p.AvatarURL).
		SetExpr("positions", "?::jsonb", string(positions)).
		Set("strong_foot", string(p.StrongFoot)).
		Set("weak_foot", p.WeakFoot).
		Set("height_feet", p.Height.Feet).
		Set("height_inches", p.Height.Inches).
		Set("weight", p.Weight).
		Set("city", p.City).
		Set("state", p.State).
		Set("country", p.Country).
		Set("school", p.School).
		Set("college", p.College).
		Set("university", p.University).
		Set("former_club", p.FormerClub).
		Set("head_coach_name", p.HeadCoachName).
		Set("head_coach_email", p.HeadCoachEmail).
		Set("head_coach_phone", p.HeadCoachPhone).
		Set("bio", p.Bio).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", p.UserID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (player.Profile, bool, error) {
	query, args, err := qb.Select("*").From("player_details").
		Where(append(conds, qb.IsNull("deleted_at"))...).
		ToSQL()
	if err != nil {
		return player.Profile{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Profile{}, false, nil
		}
		return player.Profile{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return playerFromRow(row), true, nil
}

// directorySource flattens live players with their login and primary position
// so the list filters can address plain columns.
const directorySource = `(
	SELECT l.user_id,
		TRIM(p.first_name || ' ' || p.last_name) AS name,
		COALESCE((
			SELECT pos->>'name' FROM jsonb_array_elements(p.positions) pos
			WHERE (pos->>'priority')::int = 1 LIMIT 1
		), '') AS position,
		p.player_type AS type,
		l.username AS email,
		l.status
	FROM player_details p
	JOIN login_details l ON l.user_id = p.user_id
	WHERE l.deleted_at IS NULL AND p.deleted_at IS NULL AND l.member_type = 'player'
) AS directory`

var directorySortColumns = map[string]string{
	"name":     "name",
	"position": "position",
	"type":     "type",
	"email":    "email",
	"status":   "status",
}

func directoryFilter(filter player.DirectoryFilter) qb.Stage {
	if filter.Search == "" {
		return nil
	}
	return qb.Filter(qb.Or(
		qb.ILike("name", filter.Search),
		qb.ILike("position", filter.Search),
		qb.ILike("type", filter.Search),
		qb.ILike("email", filter.Search),
	))
}

func (r *PlayerRepository) List(ctx context.Context, filter player.DirectoryFilter) ([]player.DirectoryEntry, error) {
	query, args, err := qb.Select("*").From(directorySource).
		Apply(
			directoryFilter(filter),
			qb.SortBy(directorySortColumns, filter.SortBy, filter.Desc(), "name", "user_id"),
			qb.Paginate(filter.Page, filter.Limit),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player directory query: %w", err)
	}
	var rows []directoryRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player directory: %w", err)
	}
	out := make([]player.DirectoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.DirectoryEntry{
			UserID:   row.UserID,
			Name:     row.Name,
			Position: row.Position,
			Type:     player.Type(row.Type),
			Email:    row.Email,
			Status:   row.Status,
		})
	}
	return out, nil
}

func (r *PlayerRepository) Count(ctx context.Context, filter player.DirectoryFilter) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(directorySource).
		Apply(directoryFilter(filter)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player directory query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count player directory: %w", err)
	}
	return total, nil
}

func (r *PlayerRepository) CountByType(ctx context.Context) (player.TypeCounts, error) {
	query, args, err := qb.Select("p.player_type", "COUNT(*) AS total").
		From("player_details p JOIN login_details l ON l.user_id = p.user_id").
		Where(qb.IsNull("p.deleted_at"), qb.IsNull("l.deleted_at")).
		GroupBy("p.player_type").
		ToSQL()
	if err != nil {
		return player.TypeCounts{}, fmt.Errorf("build count players by type query: %w", err)
	}
	var rows []playerTypeCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return player.TypeCounts{}, fmt.Errorf("count players by type: %w", err)
	}
	var out player.TypeCounts
	for _, row := range rows {
		switch player.Type(row.PlayerType) {
		case player.TypeGrassroot:
			out.Grassroot = row.Total
		case player.TypeProfessional:
			out.Professional = row.Total
		case player.TypeAmateur:
			out.Amateur = row.Total
		}
	}
	return out, nil
}

type ClubAcademyRepository struct {
	db *sqlx.DB
}

func NewClubAcademyRepository(db *sqlx.DB) *ClubAcademyRepository {
	return &ClubAcademyRepository{db: db}
}

func (r *ClubAcademyRepository) GetByUserID(ctx context.Context, userID string) (clubacademy.Profile, bool, error) {
	return r.getOne(ctx, "get club academy by user id", qb.Eq("user_id", userID))
}

func (r *ClubAcademyRepository) GetByEmail(ctx context.Context, email string) (clubacademy.Profile, bool, error) {
	return r.getOne(ctx, "get club academy by email", qb.Expr("LOWER(email) = LOWER(?)", email))
}

func (r *ClubAcademyRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]clubacademy.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ids := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Select("*").From("club_academy_details").
		Where(qb.In("user_id", ids), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club academies query: %w", err)
	}
	var rows []clubAcademyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list club academies: %w", err)
	}
	out := make([]clubacademy.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubAcademyFromRow(row))
	}
	return out, nil
}

func (r *ClubAcademyRepository) Update(ctx context.Context, p clubacademy.Profile) error {
	var docType, docNumber, docStatus, docRemarks string
	if p.Document != nil {
		docType = string(p.Document.Type)
		docNumber = p.Document.Number
		docStatus = string(p.Document.Status)
		docRemarks = p.Document.Remarks
	}
	query, args, err := qb.Update("club_academy_details").
		Set("name", p.Name).
		Set("short_name", p.ShortName).
		Set("phone", p.Phone).
		Set("founded_in", p.FoundedIn).
		Set("type", string(p.Type)).
		Set("document_type", nullString(docType)).
		Set("document_number", nullString(docNumber)).
		Set("document_status", nullString(docStatus)).
		Set("document_remarks", nullString(docRemarks)).
		Set("address", p.Address).
		Set("pincode", p.Pincode).
		Set("city", p.City).
		Set("state", p.State).
		Set("country", p.Country).
		Set("stadium_name", p.StadiumName).
		Set("league", p.League).
		Set("association", p.Association).
		Set("head_coach_name", p.HeadCoachName).
		Set("head_coach_email", p.HeadCoachEmail).
		Set("head_coach_phone", p.HeadCoachPhone).
		Set("contact_person", p.ContactPerson).
		Set("avatar_url", p.AvatarURL).
		Set("bio", p.Bio).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", p.UserID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update club academy query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update club academy: %w", err)
	}
	return nil
}

func (r *ClubAcademyRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (clubacademy.Profile, bool, error) {
	query, args, err := qb.Select("*").From("club_academy_details").
		Where(append(conds, qb.IsNull("deleted_at"))...).
		ToSQL()
	if err != nil {
		return clubacademy.Profile{}, false, fmt.Errorf("build %s query: %w", op, err)
	}
	var row clubAcademyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return clubacademy.Profile{}, false, nil
		}
		return clubacademy.Profile{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return clubAcademyFromRow(row), true, nil
}
