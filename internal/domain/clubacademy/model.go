package clubacademy

import (
	"time"

	"github.com/riskibarqy/footmate/internal/domain/user"
)

type Type string

const (
	TypeResidential    Type = "residential"
	TypeNonResidential Type = "non-residential"
)

type DocumentType string

const (
	DocumentPAN DocumentType = "pan"
	DocumentCOI DocumentType = "coi"
	DocumentTIN DocumentType = "tin"
)

type DocumentStatus string

const (
	DocumentPending     DocumentStatus = "pending"
	DocumentApproved    DocumentStatus = "approved"
	DocumentDisapproved DocumentStatus = "disapproved"
)

// Document is the registration document a club or academy submits for review.
type Document struct {
	Type    DocumentType   `json:"type"`
	Number  string         `json:"number"`
	Status  DocumentStatus `json:"status"`
	Remarks string         `json:"remarks,omitempty"`
}

// Profile is the club/academy variant of user.Profile.
type Profile struct {
	UserID         string
	Name           string
	ShortName      string
	MemberType     user.MemberType
	Email          string
	Phone          string
	FoundedIn      int
	Type           Type
	Document       *Document
	Address        string
	Pincode        string
	City           string
	State          string
	Country        string
	StadiumName    string
	League         string
	Association    string
	HeadCoachName  string
	HeadCoachEmail string
	HeadCoachPhone string
	ContactPerson  string
	AvatarURL      string
	Bio            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (p Profile) ProfileUserID() string {
	return p.UserID
}

func (p Profile) ProfileMemberType() user.MemberType {
	return p.MemberType
}
