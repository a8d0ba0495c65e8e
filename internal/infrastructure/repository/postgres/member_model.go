package postgres

import (
	"database/sql"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
)

type loginTableModel struct {
	ID                  int64          `db:"id"`
	UserID              string         `db:"user_id"`
	Username            string         `db:"username"`
	PasswordHash        sql.NullString `db:"password_hash"`
	Status              string         `db:"status"`
	MemberType          string         `db:"member_type"`
	Role                string         `db:"role"`
	ProfileStatus       string         `db:"profile_status"`
	ProfileRemarks      string         `db:"profile_remarks"`
	IsEmailVerified     bool           `db:"is_email_verified"`
	IsFirstTimeLogin    bool           `db:"is_first_time_login"`
	ForgotPasswordToken sql.NullString `db:"forgot_password_token"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
	DeletedAt           *time.Time     `db:"deleted_at"`
}

type loginInsertModel struct {
	UserID              string         `db:"user_id"`
	Username            string         `db:"username"`
	PasswordHash        sql.NullString `db:"password_hash"`
	Status              string         `db:"status"`
	MemberType          string         `db:"member_type"`
	Role                string         `db:"role"`
	ProfileStatus       string         `db:"profile_status"`
	IsEmailVerified     bool           `db:"is_email_verified"`
	IsFirstTimeLogin    bool           `db:"is_first_time_login"`
	ForgotPasswordToken sql.NullString `db:"forgot_password_token"`
}

type playerTableModel struct {
	ID             int64      `db:"id"`
	UserID         string     `db:"user_id"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	PlayerType     string     `db:"player_type"`
	DOB            *time.Time `db:"dob"`
	Phone          string     `db:"phone"`
	Email          string     `db:"email"`
	AvatarURL      string     `db:"avatar_url"`
	Positions      []byte     `db:"positions"`
	StrongFoot     string     `db:"strong_foot"`
	WeakFoot       int        `db:"weak_foot"`
	HeightFeet     int        `db:"height_feet"`
	HeightInches   int        `db:"height_inches"`
	Weight         int        `db:"weight"`
	City           string     `db:"city"`
	State          string     `db:"state"`
	Country        string     `db:"country"`
	School         string     `db:"school"`
	College        string     `db:"college"`
	University     string     `db:"university"`
	FormerClub     string     `db:"former_club"`
	HeadCoachName  string     `db:"head_coach_name"`
	HeadCoachEmail string     `db:"head_coach_email"`
	HeadCoachPhone string     `db:"head_coach_phone"`
	Bio            string     `db:"bio"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type playerInsertModel struct {
	UserID    string `db:"user_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	State     string `db:"state"`
	Country   string `db:"country"`
}

type clubAcademyTableModel struct {
	ID              int64          `db:"id"`
	UserID          string         `db:"user_id"`
	Name            string         `db:"name"`
	ShortName       string         `db:"short_name"`
	MemberType      string         `db:"member_type"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	FoundedIn       int            `db:"founded_in"`
	Type            string         `db:"type"`
	DocumentType    sql.NullString `db:"document_type"`
	DocumentNumber  sql.NullString `db:"document_number"`
	DocumentStatus  sql.NullString `db:"document_status"`
	DocumentRemarks sql.NullString `db:"document_remarks"`
	Address         string         `db:"address"`
	Pincode         string         `db:"pincode"`
	City            string         `db:"city"`
	State           string         `db:"state"`
	Country         string         `db:"country"`
	StadiumName     string         `db:"stadium_name"`
	League          string         `db:"league"`
	Association     string         `db:"association"`
	HeadCoachName   string         `db:"head_coach_name"`
	HeadCoachEmail  string         `db:"head_coach_email"`
	HeadCoachPhone  string         `db:"head_coach_phone"`
	ContactPerson   string         `db:"contact_person"`
	AvatarURL       string         `db:"avatar_url"`
	Bio             string         `db:"bio"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type clubAcademyInsertModel struct {
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	MemberType string `db:"member_type"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	State      string `db:"state"`
	Country    string `db:"country"`
}

type directoryRowModel struct {
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Type     string `db:"type"`
	Email    string `db:"email"`
	Status   string `db:"status"`
}

type playerTypeCountModel struct {
	PlayerType string `db:"player_type"`
	Total      int    `db:"total"`
}

func loginFromRow(row loginTableModel) user.Login {
	return user.Login{
		UserID:              row.UserID,
		Username:            row.Username,
		PasswordHash:        row.PasswordHash.String,
		Status:              user.Status(row.Status),
		MemberType:          user.MemberType(row.MemberType),
		Role:                user.Role(row.Role),
		ProfileStatus:       user.ProfileStatus(row.ProfileStatus),
		ProfileRemarks:      row.ProfileRemarks,
		IsEmailVerified:     row.IsEmailVerified,
		IsFirstTimeLogin:    row.IsFirstTimeLogin,
		ForgotPasswordToken: row.ForgotPasswordToken.String,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
		DeletedAt:           row.DeletedAt,
	}
}

func playerFromRow(row playerTableModel) player.Profile {
	var positions []player.Position
	if len(row.Positions) > 0 {
		_ = sonic.Unmarshal(row.Positions, &positions)
	}
	return player.Profile{
		UserID:         row.UserID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		PlayerType:     player.Type(row.PlayerType),
		DOB:            row.DOB,
		Phone:          row.Phone,
		Email:          row.Email,
		AvatarURL:      row.AvatarURL,
		Positions:      positions,
		StrongFoot:     player.StrongFoot(row.StrongFoot),
		WeakFoot:       row.WeakFoot,
		Height:         player.Height{Feet: row.HeightFeet, Inches: row.HeightInches},
		Weight:         row.Weight,
		City:           row.City,
		State:          row.State,
		Country:        row.Country,
		School:         row.School,
		College:        row.College,
		University:     row.University,
		FormerClub:     row.FormerClub,
		HeadCoachName:  row.HeadCoachName,
		HeadCoachEmail: row.HeadCoachEmail,
		HeadCoachPhone: row.HeadCoachPhone,
		Bio:            row.Bio,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		DeletedAt:      row.DeletedAt,
	}
}

func clubAcademyFromRow(row clubAcademyTableModel) clubacademy.Profile {
	out := clubacademy.Profile{
		UserID:         row.UserID,
		Name:           row.Name,
		ShortName:      row.ShortName,
		MemberType:     user.MemberType(row.MemberType),
		Email:          row.Email,
		Phone:          row.Phone,
		FoundedIn:      row.FoundedIn,
		Type:           clubacademy.Type(row.Type),
		Address:        row.Address,
		Pincode:        row.Pincode,
		City:           row.City,
		State:          row.State,
		Country:        row.Country,
		StadiumName:    row.StadiumName,
		League:         row.League,
		Association:    row.Association,
		HeadCoachName:  row.HeadCoachName,
		HeadCoachEmail: row.HeadCoachEmail,
		HeadCoachPhone: row.HeadCoachPhone,
		ContactPerson:  row.ContactPerson,
		AvatarURL:      row.AvatarURL,
		Bio:            row.Bio,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		DeletedAt:      row.DeletedAt,
	}
	if row.DocumentType.Valid {
		out.Document = &clubacademy.Document{
			Type:    clubacademy.DocumentType(row.DocumentType.String),
			Number:  row.DocumentNumber.String,
			Status:  clubacademy.DocumentStatus(row.DocumentStatus.String),
			Remarks: row.DocumentRemarks.String,
		}
	}
	return out
}
