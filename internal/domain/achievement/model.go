package achievement

import "time"

type Achievement struct {
	ID        string
	UserID    string
	Type      string
	Name      string
	Year      int
	Position  string
	MediaURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Stats is the per-user achievement summary.
type Stats struct {
	Achievements int
	Tournaments  int
}
