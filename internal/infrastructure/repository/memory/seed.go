package memory

import (
	"github.com/riskibarqy/footmate/internal/domain/ability"
	"github.com/riskibarqy/footmate/internal/domain/location"
)

const CountryIDIndia = "ctry-india"

func SeedAbilities() []ability.Ability {
	return []ability.Ability{
		{ID: "ab-physical", Name: "Physical", Attributes: []ability.Attribute{
			{ID: "at-acceleration", AbilityID: "ab-physical", Name: "Acceleration"},
			{ID: "at-agility", AbilityID: "ab-physical", Name: "Agility"},
			{ID: "at-stamina", AbilityID: "ab-physical", Name: "Stamina"},
			{ID: "at-strength", AbilityID: "ab-physical", Name: "Strength"},
		}},
		{ID: "ab-technical", Name: "Technical", Attributes: []ability.Attribute{
			{ID: "at-dribbling", AbilityID: "ab-technical", Name: "Dribbling"},
			{ID: "at-passing", AbilityID: "ab-technical", Name: "Passing"},
			{ID: "at-first-touch", AbilityID: "ab-technical", Name: "First Touch"},
			{ID: "at-heading", AbilityID: "ab-technical", Name: "Heading"},
		}},
		{ID: "ab-mental", Name: "Mental", Attributes: []ability.Attribute{
			{ID: "at-vision", AbilityID: "ab-mental", Name: "Vision"},
			{ID: "at-composure", AbilityID: "ab-mental", Name: "Composure"},
			{ID: "at-decisions", AbilityID: "ab-mental", Name: "Decisions"},
		}},
		{ID: "ab-goalkeeping", Name: "Goalkeeping", Attributes: []ability.Attribute{
			{ID: "at-handling", AbilityID: "ab-goalkeeping", Name: "Handling"},
			{ID: "at-reflexes", AbilityID: "ab-goalkeeping", Name: "Reflexes"},
			{ID: "at-diving", AbilityID: "ab-goalkeeping", Name: "Diving"},
		}},
	}
}

func SeedPositions() []ability.Position {
	return []ability.Position{
		{ID: "pos-gk", Name: "Goalkeeper", Abbreviation: "GK", AbilityIDs: []string{"ab-goalkeeping", "ab-physical", "ab-mental"}},
		{ID: "pos-cb", Name: "Centre Back", Abbreviation: "CB", AbilityIDs: []string{"ab-physical", "ab-technical", "ab-mental"}},
		{ID: "pos-cm", Name: "Central Midfielder", Abbreviation: "CM", AbilityIDs: []string{"ab-technical", "ab-mental", "ab-physical"}},
		{ID: "pos-st", Name: "Striker", Abbreviation: "ST", AbilityIDs: []string{"ab-technical", "ab-physical", "ab-mental"}},
	}
}

func SeedCountries() []location.Country {
	return []location.Country{
		{ID: CountryIDIndia, Name: "India", SortName: "IN", PhoneCode: "91"},
		{ID: "ctry-nepal", Name: "Nepal", SortName: "NP", PhoneCode: "977"},
	}
}

func SeedStates() []location.State {
	return []location.State{
		{ID: "st-delhi", Name: "Delhi", Slug: "delhi", CountryID: CountryIDIndia},
		{ID: "st-karnataka", Name: "Karnataka", Slug: "karnataka", CountryID: CountryIDIndia},
		{ID: "st-kerala", Name: "Kerala", Slug: "kerala", CountryID: CountryIDIndia},
	}
}

func SeedCities() []location.City {
	return []location.City{
		{ID: "ct-new-delhi", Name: "New Delhi", Slug: "new-delhi", StateID: "st-delhi"},
		{ID: "ct-bengaluru", Name: "Bengaluru", Slug: "bengaluru", StateID: "st-karnataka"},
		{ID: "ct-kochi", Name: "Kochi", Slug: "kochi", StateID: "st-kerala"},
	}
}
