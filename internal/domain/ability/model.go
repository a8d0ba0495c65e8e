package ability

// Attribute is a scoring dimension owned by exactly one Ability.
type Attribute struct {
	ID        string
	AbilityID string
	Name      string
}

type Ability struct {
	ID         string
	Name       string
	Attributes []Attribute
}

// AttributeByID returns the attribute with id when it belongs to the ability.
func (a Ability) AttributeByID(id string) (Attribute, bool) {
	for _, attr := range a.Attributes {
		if attr.ID == id {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Position is reference data naming the abilities relevant to a role.
type Position struct {
	ID           string
	Name         string
	Abbreviation string
	AbilityIDs   []string
}
