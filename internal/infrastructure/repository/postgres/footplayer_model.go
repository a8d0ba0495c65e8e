package postgres

import (
	"time"

	"github.com/riskibarqy/footmate/internal/domain/footplayer"
)

type footplayerTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	SentBy          string     `db:"sent_by"`
	SendToUserID    string     `db:"send_to_user_id"`
	SendToFirstName string     `db:"send_to_first_name"`
	SendToLastName  string     `db:"send_to_last_name"`
	SendToEmail     string     `db:"send_to_email"`
	SendToPhone     string     `db:"send_to_phone"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type footplayerInsertModel struct {
	PublicID        string `db:"public_id"`
	SentBy          string `db:"sent_by"`
	SendToUserID    string `db:"send_to_user_id"`
	SendToFirstName string `db:"send_to_first_name"`
	SendToLastName  string `db:"send_to_last_name"`
	SendToEmail     string `db:"send_to_email"`
	SendToPhone     string `db:"send_to_phone"`
	Status          string `db:"status"`
}

type footplayerListRowModel struct {
	PublicID   string `db:"public_id"`
	Status     string `db:"status"`
	UserID     string `db:"user_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	FullName   string `db:"full_name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	AvatarURL  string `db:"avatar_url"`
	Position   string `db:"position"`
	PlayerType string `db:"player_type"`
}

func footplayerFromRow(row footplayerTableModel) footplayer.Request {
	return footplayer.Request{
		ID:     row.PublicID,
		SentBy: row.SentBy,
		SendTo: footplayer.Recipient{
			UserID:    row.SendToUserID,
			FirstName: row.SendToFirstName,
			LastName:  row.SendToLastName,
			Email:     row.SendToEmail,
			Phone:     row.SendToPhone,
		},
		Status:    footplayer.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		DeletedAt: row.DeletedAt,
	}
}

func footplayerListRowFromModel(row footplayerListRowModel) footplayer.ListRow {
	return footplayer.ListRow{
		ID:         row.PublicID,
		Status:     footplayer.Status(row.Status),
		UserID:     row.UserID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		FullName:   row.FullName,
		Email:      row.Email,
		Phone:      row.Phone,
		AvatarURL:  row.AvatarURL,
		Position:   row.Position,
		PlayerType: row.PlayerType,
	}
}
