// Package id hands out identifiers for records and one-time tokens.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// Func adapts a plain function to Generator.
type Func func() (string, error)

func (f Func) NewID() (string, error) { return f() }

// NewUUIDGenerator returns random (version 4) UUIDs. They are also used as
// password reset tokens, so they must stay unpredictable.
func NewUUIDGenerator() Generator {
	return Func(func() (string, error) {
		v, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate uuid: %w", err)
		}
		return v.String(), nil
	})
}
