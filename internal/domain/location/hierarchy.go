package location

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// ErrTreeTooDeep is returned when a parent walk exceeds MaxDepth, which can
// only happen if stored data contains a cycle or a malformed chain.
var ErrTreeTooDeep = shared.NewDomainError("INVALID_STATE", "location tree exceeds maximum depth")

// Lookup is the read side the hierarchy walks need
type Lookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
}

// Ancestors returns the chain from the node itself up to the root, nearest
// first. The walk is iterative and stops after MaxDepth nodes.
func Ancestors(ctx context.Context, lookup Lookup, id uuid.UUID) ([]Location, error) {
	chain := make([]Location, 0, MaxDepth)
	seen := make(map[uuid.UUID]struct{}, MaxDepth)
	next := &id
	for next != nil {
		if len(chain) == MaxDepth {
			return nil, ErrTreeTooDeep
		}
		if _, dup := seen[*next]; dup {
			return nil, ErrTreeTooDeep.WithMessage(fmt.Sprintf("location %s appears twice in its own ancestry", *next))
		}
		seen[*next] = struct{}{}

		loc, err := lookup.FindByID(ctx, *next)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *loc)
		next = loc.ParentID
	}
	return chain, nil
}

// AncestorOfType walks up from id and returns the first node of type t
// (the node itself counts).
func AncestorOfType(ctx context.Context, lookup Lookup, id uuid.UUID, t Type) (*Location, error) {
	chain, err := Ancestors(ctx, lookup, id)
	if err != nil {
		return nil, err
	}
	for i := range chain {
		if chain[i].Type == t {
			return &chain[i], nil
		}
	}
	return nil, shared.ErrNotFound.WithMessage(fmt.Sprintf("no %s above location %s", t, id))
}

// Chain is the set of sibling lists used to pre-fill cascading selectors
// for a chosen area.
type Chain struct {
	AreaID uuid.UUID `json:"area_id"`
	Areas  []Summary `json:"areas"`
	Cities []Summary `json:"cities"`
	States []Summary `json:"states"`
}
