package footplayer

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAdded    Status = "added"
	StatusRejected Status = "rejected"
)

// Recipient is the player snapshot stored with a request.
type Recipient struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Request links a club or academy (SentBy) to a player.
type Request struct {
	ID        string
	SentBy    string
	SendTo    Recipient
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// ListRow is a request joined with the player's profile.
type ListRow struct {
	ID         string
	Status     Status
	UserID     string
	FirstName  string
	LastName   string
	FullName   string
	Email      string
	Phone      string
	AvatarURL  string
	Position   string
	PlayerType string
}
