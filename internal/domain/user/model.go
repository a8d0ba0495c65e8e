package user

import (
	"strings"
	"time"
)

type MemberType string

const (
	MemberTypePlayer  MemberType = "player"
	MemberTypeClub    MemberType = "club"
	MemberTypeAcademy MemberType = "academy"
)

func (m MemberType) Valid() bool {
	switch m {
	case MemberTypePlayer, MemberTypeClub, MemberTypeAcademy:
		return true
	}
	return false
}

// IsOrganisation reports whether the member type is a club or an academy.
func (m MemberType) IsOrganisation() bool {
	return m == MemberTypeClub || m == MemberTypeAcademy
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePlayer  Role = "player"
	RoleClub    Role = "club"
	RoleAcademy Role = "academy"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
	StatusBlocked  Status = "blocked"
)

type ProfileStatus string

const (
	ProfileVerified    ProfileStatus = "verified"
	ProfileNonVerified ProfileStatus = "non-verified"
	ProfileDisapproved ProfileStatus = "disapproved"
)

// Login is the identity record behind every member.
type Login struct {
	UserID              string
	Username            string
	PasswordHash        string
	Status              Status
	MemberType          MemberType
	Role                Role
	ProfileStatus       ProfileStatus
	ProfileRemarks      string
	IsEmailVerified     bool
	IsFirstTimeLogin    bool
	ForgotPasswordToken string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time
}

func (l Login) IsDeleted() bool {
	return l.DeletedAt != nil
}

func (l Login) IsVerified() bool {
	return l.ProfileStatus == ProfileVerified
}

// NormalizeUsername lowercases and trims an email used as username.
func NormalizeUsername(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID     string
	Email      string
	Role       Role
	MemberType MemberType
}

// Profile is the member-type specific detail record. Implementations are
// player.Profile and clubacademy.Profile; callers switch on the concrete type.
type Profile interface {
	ProfileUserID() string
	ProfileMemberType() MemberType
}
