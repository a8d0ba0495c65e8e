package postgres

import (
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/footmate/internal/domain/reportcard"
)

type reportCardTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	SentBy      string     `db:"sent_by"`
	SendTo      string     `db:"send_to"`
	Status      string     `db:"status"`
	Abilities   []byte     `db:"abilities"`
	Remarks     string     `db:"remarks"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type managedRowModel struct {
	UserID           string     `db:"user_id"`
	Name             string     `db:"name"`
	FirstName        string     `db:"first_name"`
	LastName         string     `db:"last_name"`
	Category         string     `db:"category"`
	AvatarURL        string     `db:"avatar_url"`
	TotalReportCards int        `db:"total_report_cards"`
	Status           string     `db:"status"`
	DraftID          string     `db:"draft_id"`
	PublishedAt      *time.Time `db:"published_at"`
	CreatedAt        *time.Time `db:"created_at"`
}

type playerCardRowModel struct {
	ID          string     `db:"id"`
	SentBy      string     `db:"sent_by"`
	Name        string     `db:"name"`
	CreatedBy   string     `db:"created_by"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

type managedPlayerRowModel struct {
	ID          string     `db:"id"`
	SentBy      string     `db:"sent_by"`
	Status      string     `db:"status"`
	CreatedBy   string     `db:"created_by"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

func reportCardFromRow(row reportCardTableModel) (reportcard.ReportCard, error) {
	var abilities []reportcard.AbilityScore
	if len(row.Abilities) > 0 {
		if err := sonic.Unmarshal(row.Abilities, &abilities); err != nil {
			return reportcard.ReportCard{}, err
		}
	}
	return reportcard.ReportCard{
		ID:          row.PublicID,
		SentBy:      row.SentBy,
		SendTo:      row.SendTo,
		Status:      reportcard.Status(row.Status),
		Abilities:   abilities,
		Remarks:     row.Remarks,
		PublishedAt: row.PublishedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		DeletedAt:   row.DeletedAt,
	}, nil
}
