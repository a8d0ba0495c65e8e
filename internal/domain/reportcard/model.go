package reportcard

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

type AttributeScore struct {
	AttributeID   string `json:"attribute_id"`
	AttributeName string `json:"attribute_name,omitempty"`
	Score         int    `json:"attribute_score"`
}

type AbilityScore struct {
	AbilityID   string           `json:"ability_id"`
	AbilityName string           `json:"ability_name,omitempty"`
	Attributes  []AttributeScore `json:"attributes"`
}

// ReportCard is a club/academy's scored evaluation of a player.
type ReportCard struct {
	ID          string
	SentBy      string
	SendTo      string
	Status      Status
	Abilities   []AbilityScore
	Remarks     string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// ManagedRow is one footplayer line of a club's report card overview.
type ManagedRow struct {
	UserID           string
	Name             string
	FirstName        string
	LastName         string
	Category         string
	AvatarURL        string
	TotalReportCards int
	Status           string
	DraftID          string
	PublishedAt      *time.Time
	CreatedAt        *time.Time
}

// PlayerRow is a published card as the receiving player sees it.
type PlayerRow struct {
	ID          string
	SentBy      string
	Name        string
	CreatedBy   string
	PublishedAt *time.Time
	CreatedAt   time.Time
}

// ManagedPlayerRow is a card about one player as a club/academy sees it.
type ManagedPlayerRow struct {
	ID          string
	SentBy      string
	Status      Status
	CreatedBy   string
	PublishedAt *time.Time
	CreatedAt   time.Time
}
