package location

import "time"

type Country struct {
	ID        string
	Name      string
	SortName  string
	PhoneCode string
}

type State struct {
	ID        string
	Name      string
	Slug      string
	CountryID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type City struct {
	ID        string
	Name      string
	Slug      string
	StateID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountryStats counts the states and cities registered under a country.
type CountryStats struct {
	Country   string
	NoOfState int
	NoOfCity  int
}
