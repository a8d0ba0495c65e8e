package postgres

import (
	"time"

	"github.com/riskibarqy/footmate/internal/domain/contract"
	"github.com/riskibarqy/footmate/internal/domain/user"
)

type contractTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	SentBy           string     `db:"sent_by"`
	SendTo           string     `db:"send_to"`
	Category         string     `db:"category"`
	ClubAcademyName  string     `db:"club_academy_name"`
	ClubAcademyEmail string     `db:"club_academy_email"`
	ClubAcademyPhone string     `db:"club_academy_phone"`
	PlayerName       string     `db:"player_name"`
	PlayerEmail      string     `db:"player_email"`
	PlayerPhone      string     `db:"player_phone"`
	OtherName        string     `db:"other_name"`
	OtherEmail       string     `db:"other_email"`
	OtherPhoneNumber string     `db:"other_phone_number"`
	EffectiveDate    time.Time  `db:"effective_date"`
	ExpiryDate       time.Time  `db:"expiry_date"`
	PlaceOfSignature string     `db:"place_of_signature"`
	DateOfSigning    *time.Time `db:"date_of_signing"`
	Remarks          string     `db:"remarks"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

type contractInsertModel struct {
	PublicID         string     `db:"public_id"`
	SentBy           string     `db:"sent_by"`
	SendTo           string     `db:"send_to"`
	Category         string     `db:"category"`
	ClubAcademyName  string     `db:"club_academy_name"`
	ClubAcademyEmail string     `db:"club_academy_email"`
	ClubAcademyPhone string     `db:"club_academy_phone"`
	PlayerName       string     `db:"player_name"`
	PlayerEmail      string     `db:"player_email"`
	PlayerPhone      string     `db:"player_phone"`
	OtherName        string     `db:"other_name"`
	OtherEmail       string     `db:"other_email"`
	OtherPhoneNumber string     `db:"other_phone_number"`
	EffectiveDate    time.Time  `db:"effective_date"`
	ExpiryDate       time.Time  `db:"expiry_date"`
	PlaceOfSignature string     `db:"place_of_signature"`
	DateOfSigning    *time.Time `db:"date_of_signing"`
	Status           string     `db:"status"`
}

func contractFromRow(row contractTableModel) contract.EmploymentContract {
	return contract.EmploymentContract{
		ID:               row.PublicID,
		SentBy:           row.SentBy,
		SendTo:           row.SendTo,
		Category:         user.MemberType(row.Category),
		ClubAcademyName:  row.ClubAcademyName,
		ClubAcademyEmail: row.ClubAcademyEmail,
		ClubAcademyPhone: row.ClubAcademyPhone,
		PlayerName:       row.PlayerName,
		PlayerEmail:      row.PlayerEmail,
		PlayerPhone:      row.PlayerPhone,
		OtherName:        row.OtherName,
		OtherEmail:       row.OtherEmail,
		OtherPhoneNumber: row.OtherPhoneNumber,
		EffectiveDate:    row.EffectiveDate,
		ExpiryDate:       row.ExpiryDate,
		PlaceOfSignature: row.PlaceOfSignature,
		DateOfSigning:    row.DateOfSigning,
		Remarks:          row.Remarks,
		Status:           contract.Status(row.Status),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		DeletedAt:        row.DeletedAt,
	}
}
