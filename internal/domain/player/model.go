package player

import (
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/user"
)

// Type is the player's competitive tier.
type Type string

const (
	TypeGrassroot    Type = "grassroot"
	TypeProfessional Type = "professional"
	TypeAmateur      Type = "amateur"
)

var AllTypes = map[Type]struct{}{
	TypeGrassroot:    {},
	TypeProfessional: {},
	TypeAmateur:      {},
}

type StrongFoot string

const (
	StrongFootLeft  StrongFoot = "left"
	StrongFootRight StrongFoot = "right"
)

// Position is a playing position ranked by preference, 1 being primary.
type Position struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

type Height struct {
	Feet   int `json:"feet"`
	Inches int `json:"inches"`
}

// Profile is the player variant of user.Profile.
type Profile struct {
	UserID         string
	FirstName      string
	LastName       string
	PlayerType     Type
	DOB            *time.Time
	Phone          string
	Email          string
	AvatarURL      string
	Positions      []Position
	StrongFoot     StrongFoot
	WeakFoot       int
	Height         Height
	Weight         int
	City           string
	State          string
	Country        string
	School         string
	College        string
	University     string
	FormerClub     string
	HeadCoachName  string
	HeadCoachEmail string
	HeadCoachPhone string
	Bio            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (p Profile) ProfileUserID() string {
	return p.UserID
}

func (p Profile) ProfileMemberType() user.MemberType {
	return user.MemberTypePlayer
}

func (p Profile) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// PositionAt returns the name of the position with the given priority.
func (p Profile) PositionAt(priority int) string {
	for _, pos := range p.Positions {
		if pos.Priority == priority {
			return pos.Name
		}
	}
	return ""
}
