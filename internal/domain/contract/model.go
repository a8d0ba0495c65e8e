package contract

import (
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/user"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusActive      Status = "active"
	StatusDisapproved Status = "disapproved"
	StatusCompleted   Status = "completed"
)

// OthersClubName marks a contract whose counterparty is not a platform member.
const OthersClubName = "others"

// EmploymentContract binds a player to a club or academy for a date range.
type EmploymentContract struct {
	ID               string
	SentBy           string
	SendTo           string
	Category         user.MemberType
	ClubAcademyName  string
	ClubAcademyEmail string
	ClubAcademyPhone string
	PlayerName       string
	PlayerEmail      string
	PlayerPhone      string
	OtherName        string
	OtherEmail       string
	OtherPhoneNumber string
	EffectiveDate    time.Time
	ExpiryDate       time.Time
	PlaceOfSignature string
	DateOfSigning    *time.Time
	Remarks          string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// IsOthers reports whether the counterparty is an off-platform organisation.
func (c EmploymentContract) IsOthers() bool {
	return strings.EqualFold(strings.TrimSpace(c.ClubAcademyName), OthersClubName)
}
