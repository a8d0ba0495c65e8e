package player

import (
	"errors"
	"fmt"
	"strings"
)

const MaxPositions = 3

var (
	ErrPositionRequired        = errors.New("at least one position is required")
	ErrInvalidPositionPriority = errors.New("position priority must be between 1 and 3")
	ErrDuplicatePosition       = errors.New("position priority or id is repeated")
	ErrAmateurDetailsRequired  = errors.New("height and city are required for amateur players")
	ErrInvalidPlayerType       = errors.New("invalid player type")
	ErrInvalidWeakFoot         = errors.New("weak foot must be between 1 and 5")
)

// Validate checks cross-field rules that a single request field cannot express.
func (p Profile) Validate() error {
	if _, ok := AllTypes[p.PlayerType]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPlayerType, p.PlayerType)
	}
	if len(p.Positions) == 0 {
		return ErrPositionRequired
	}
	if len(p.Positions) > MaxPositions {
		return fmt.Errorf("%w: got %d positions", ErrInvalidPositionPriority, len(p.Positions))
	}

	priorities := make(map[int]struct{}, len(p.Positions))
	ids := make(map[string]struct{}, len(p.Positions))
	for _, pos := range p.Positions {
		if pos.Priority < 1 || pos.Priority > MaxPositions {
			return ErrInvalidPositionPriority
		}
		if _, exists := priorities[pos.Priority]; exists {
			return ErrDuplicatePosition
		}
		if _, exists := ids[pos.ID]; exists {
			return ErrDuplicatePosition
		}
		priorities[pos.Priority] = struct{}{}
		ids[pos.ID] = struct{}{}
	}

	if p.WeakFoot != 0 && (p.WeakFoot < 1 || p.WeakFoot > 5) {
		return ErrInvalidWeakFoot
	}
	if p.PlayerType == TypeAmateur {
		if p.Height.Feet <= 0 || strings.TrimSpace(p.City) == "" {
			return ErrAmateurDetailsRequired
		}
	}
	return nil
}
