// Package location models the fixed four-level geographic tree
// (country, state, city, area) used for addresses and delivery checks.
package location

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// RootName is the country every lookup without a parent starts from
const RootName = "India"

// MaxDepth is the number of levels in the tree
const MaxDepth = 4

// Type is the level of a node in the location tree
type Type uint8

const (
	TypeCountry Type = iota + 1
	TypeState
	TypeCity
	TypeArea
)

// String returns the string representation of Type
func (t Type) String() string {
	switch t {
	case TypeCountry:
		return "Country"
	case TypeState:
		return "State"
	case TypeCity:
		return "City"
	case TypeArea:
		return "Area"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// IsValid returns true for the four declared levels
func (t Type) IsValid() bool {
	return t >= TypeCountry && t <= TypeArea
}

// Depth is the 1-based level of the type, Country being 1
func (t Type) Depth() int {
	return int(t)
}

// Parent returns the level directly above t
func (t Type) Parent() (Type, bool) {
	switch t {
	case TypeState:
		return TypeCountry, true
	case TypeCity:
		return TypeState, true
	case TypeArea:
		return TypeCity, true
	}
	return 0, false
}

// Child returns the level directly below t
func (t Type) Child() (Type, bool) {
	switch t {
	case TypeCountry:
		return TypeState, true
	case TypeState:
		return TypeCity, true
	case TypeCity:
		return TypeArea, true
	}
	return 0, false
}

// ParseType accepts the canonical names case-insensitively
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "country":
		return TypeCountry, nil
	case "state":
		return TypeState, nil
	case "city":
		return TypeCity, nil
	case "area":
		return TypeArea, nil
	}
	return 0, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("unknown location type %q", s))
}

// Location is one node of the tree. The root has no parent.
type Location struct {
	ID       uuid.UUID
	Name     string
	Type     Type
	ParentID *uuid.UUID
}

// NewLocation creates a node. Only a country may be parentless and
// the parent must sit exactly one level above.
func NewLocation(name string, t Type, parent *Location) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessage("location name cannot be empty")
	}
	if !t.IsValid() {
		return nil, shared.ErrInvalidInput.WithMessage("invalid location type")
	}
	loc := &Location{ID: uuid.New(), Name: name, Type: t}
	if parent == nil {
		if t != TypeCountry {
			return nil, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("%s must have a parent", t))
		}
		return loc, nil
	}
	if want, _ := t.Parent(); parent.Type != want {
		return nil, shared.ErrInvalidInput.WithMessage(
			fmt.Sprintf("%s cannot be placed under %s", t, parent.Type))
	}
	pid := parent.ID
	loc.ParentID = &pid
	return loc, nil
}

// IsRoot reports whether the node has no parent
func (l *Location) IsRoot() bool {
	return l.ParentID == nil
}

// Summary is the {id, name} pair returned to location selectors
type Summary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Summarize projects locations to their summaries, preserving order
func Summarize(locs []Location) []Summary {
	out := make([]Summary, 0, len(locs))
	for _, l := range locs {
		out = append(out, Summary{ID: l.ID, Name: l.Name})
	}
	return out
}
