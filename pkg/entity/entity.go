// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-shipsim/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// BaseEntity contains the state shared by every scene object
type BaseEntity struct {
	ID     ID
	Body   physics.MovementState
	Active bool
}
