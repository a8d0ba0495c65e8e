package reportcard

import (
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/footmate/internal/domain/ability"
)

const (
	MinScoredAttributes = 3
	MinScoredAbilities  = 3
	MaxAttributeScore   = 100
)

var (
	ErrMalformedAbilities  = errors.New("abilities is not a valid list")
	ErrInvalidShape        = errors.New("invalid report card abilities")
	ErrAbilityNotFound     = errors.New("ability not found")
	ErrAttributeNotFound   = errors.New("attribute not found")
	ErrDuplicateAbility    = errors.New("duplicate ability id")
	ErrDuplicateAttribute  = errors.New("duplicate attribute id")
	ErrScoreCriteriaFailed = errors.New("score criteria failed")
)

var abilitiesJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseAbilities decodes the serialized abilities field of a request.
func ParseAbilities(raw string) ([]AbilityScore, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMalformedAbilities
	}
	var out []AbilityScore
	if err := abilitiesJSON.UnmarshalFromString(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAbilities, err)
	}
	return out, nil
}

// ValidateShape checks required ids and score bounds.
func ValidateShape(abilities []AbilityScore) error {
	if len(abilities) == 0 {
		return fmt.Errorf("%w: abilities is required", ErrInvalidShape)
	}
	for i, ab := range abilities {
		if strings.TrimSpace(ab.AbilityID) == "" {
			return fmt.Errorf("%w: abilities[%d].ability_id is required", ErrInvalidShape, i)
		}
		if len(ab.Attributes) == 0 {
			return fmt.Errorf("%w: abilities[%d].attributes is required", ErrInvalidShape, i)
		}
		for j, attr := range ab.Attributes {
			if strings.TrimSpace(attr.AttributeID) == "" {
				return fmt.Errorf("%w: abilities[%d].attributes[%d].attribute_id is required", ErrInvalidShape, i, j)
			}
			if attr.Score < 0 || attr.Score > MaxAttributeScore {
				return fmt.Errorf("%w: abilities[%d].attributes[%d].attribute_score must be between 0 and %d", ErrInvalidShape, i, j, MaxAttributeScore)
			}
		}
	}
	return nil
}

// AbilityIDs lists the submitted ability ids in order, without repeats.
func AbilityIDs(abilities []AbilityScore) []string {
	seen := make(map[string]struct{}, len(abilities))
	out := make([]string, 0, len(abilities))
	for _, ab := range abilities {
		if _, ok := seen[ab.AbilityID]; ok {
			continue
		}
		seen[ab.AbilityID] = struct{}{}
		out = append(out, ab.AbilityID)
	}
	return out
}

// ValidateAbilities resolves submitted scores against reference abilities and
// enforces the scoring rule. It returns the first violation in submission
// order, or the scores enriched with display names.
func ValidateAbilities(submitted []AbilityScore, reference []ability.Ability) ([]AbilityScore, error) {
	byID := make(map[string]ability.Ability, len(reference))
	for _, ab := range reference {
		byID[ab.ID] = ab
	}

	out := make([]AbilityScore, 0, len(submitted))
	seenAbilities := make(map[string]struct{}, len(submitted))
	counting := 0
	for _, sub := range submitted {
		ref, ok := byID[sub.AbilityID]
		if !ok {
			return nil, ErrAbilityNotFound
		}

		scored := 0
		attrs := make([]AttributeScore, 0, len(sub.Attributes))
		seenAttributes := make(map[string]struct{}, len(sub.Attributes))
		for _, attr := range sub.Attributes {
			refAttr, ok := ref.AttributeByID(attr.AttributeID)
			if !ok {
				return nil, ErrAttributeNotFound
			}
			if _, dup := seenAttributes[attr.AttributeID]; dup {
				return nil, ErrDuplicateAttribute
			}
			seenAttributes[attr.AttributeID] = struct{}{}
			if attr.Score > 0 {
				scored++
			}
			attrs = append(attrs, AttributeScore{
				AttributeID:   attr.AttributeID,
				AttributeName: refAttr.Name,
				Score:         attr.Score,
			})
		}

		if _, dup := seenAbilities[sub.AbilityID]; dup {
			return nil, ErrDuplicateAbility
		}
		seenAbilities[sub.AbilityID] = struct{}{}
		if scored >= MinScoredAttributes {
			counting++
		}
		out = append(out, AbilityScore{
			AbilityID:   sub.AbilityID,
			AbilityName: ref.Name,
			Attributes:  attrs,
		})
	}

	if counting < MinScoredAbilities {
		return nil, ErrScoreCriteriaFailed
	}
	return out, nil
}
