// Package location serves lookups over the country/state/city/area tree.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/identity"
	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/domain/store"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
)

// ErrLocationNotFound is returned for unknown nodes
var ErrLocationNotFound = shared.ErrNotFound.WithMessage("Location not found")

// LocationService resolves children, ancestor chains and delivery regions
type LocationService struct {
	locations location.Repository
	addresses location.AddressRepository
	users     identity.UserRepository
	stores    store.Repository
}

// NewLocationService creates a new LocationService
func NewLocationService(
	locations location.Repository,
	addresses location.AddressRepository,
	users identity.UserRepository,
	stores store.Repository,
) *LocationService {
	return &LocationService{
		locations: locations,
		addresses: addresses,
		users:     users,
		stores:    stores,
	}
}

// ChildrenOf lists the nodes of childType directly under parent.
// parent may be an ID or a name; empty or "0" selects the root. A name
// matches every node carrying it, and an unknown name yields no children.
func (s *LocationService) ChildrenOf(ctx context.Context, parent, childType string) ([]location.Summary, error) {
	t, err := location.ParseType(childType)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "location", "children_of", "parent", parent, "type", t)
	defer span.End()

	var children []location.Location
	if name, byName := parentName(parent); byName {
		children, err = s.locations.ListChildrenOfNamed(ctx, name, t)
	} else {
		var node *location.Location
		if node, err = s.resolve(ctx, parent); err != nil {
			return nil, err
		}
		children, err = s.locations.ListChildren(ctx, node.ID, t)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return location.Summarize(children), nil
}

// AncestorChainOf returns, for an area, its sibling areas, the cities of its
// state and the states of its country.
func (s *LocationService) AncestorChainOf(ctx context.Context, areaID uuid.UUID) (*location.Chain, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "location", "ancestor_chain", "area_id", areaID.String())
	defer span.End()

	path, err := s.pathOf(ctx, areaID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	area, city, state, country := path[0], path[1], path[2], path[3]

	areas, err := s.locations.ListChildren(ctx, city.ID, location.TypeArea)
	if err != nil {
		return nil, err
	}
	cities, err := s.locations.ListChildren(ctx, state.ID, location.TypeCity)
	if err != nil {
		return nil, err
	}
	states, err := s.locations.ListChildren(ctx, country.ID, location.TypeState)
	if err != nil {
		return nil, err
	}

	return &location.Chain{
		AreaID: area.ID,
		Areas:  location.Summarize(areas),
		Cities: location.Summarize(cities),
		States: location.Summarize(states),
	}, nil
}

// UserLocation resolves the area, city and state of a user's address
func (s *LocationService) UserLocation(ctx context.Context, userID uuid.UUID) (*UserLocationResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound.WithMessage("User not found")
		}
		return nil, err
	}
	if user.AddressID == nil {
		return nil, shared.ErrNotFound.WithMessage("User has no address")
	}

	addressID, path, err := s.addressPath(ctx, *user.AddressID)
	if err != nil {
		return nil, err
	}
	return &UserLocationResponse{
		AddressID: addressID,
		Area:      summary(path[0]),
		City:      summary(path[1]),
		State:     summary(path[2]),
	}, nil
}

// IsInterStateDelivery reports whether the user's address and the store's
// address lie in different states.
func (s *LocationService) IsInterStateDelivery(ctx context.Context, userID, storeID uuid.UUID) (*InterStateResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "location", "inter_state",
		"user_id", userID.String(), "store_id", storeID.String())
	defer span.End()

	userLoc, err := s.UserLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound.WithMessage("Store not found")
		}
		return nil, err
	}
	if st.AddressID == nil {
		return nil, shared.ErrNotFound.WithMessage("Store has no address")
	}
	_, storePath, err := s.addressPath(ctx, *st.AddressID)
	if err != nil {
		return nil, err
	}

	storeState := summary(storePath[2])
	inter := userLoc.State.ID != storeState.ID
	telemetry.SetAttributes(span, "inter_state", inter)
	return &InterStateResponse{
		InterState: inter,
		UserState:  userLoc.State,
		StoreState: storeState,
	}, nil
}

// parentName reports whether the parent argument of ChildrenOf is a name
// rather than the root marker or an ID
func parentName(parent string) (string, bool) {
	parent = strings.TrimSpace(parent)
	if parent == "" || parent == "0" {
		return "", false
	}
	if _, err := uuid.Parse(parent); err == nil {
		return "", false
	}
	return parent, true
}

// resolve maps the root marker or an ID to a node
func (s *LocationService) resolve(ctx context.Context, parent string) (*location.Location, error) {
	parent = strings.TrimSpace(parent)
	var (
		node *location.Location
		err  error
	)
	if id, perr := uuid.Parse(parent); perr == nil {
		node, err = s.locations.FindByID(ctx, id)
	} else {
		node, err = s.locations.FindByName(ctx, location.RootName)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return node, nil
}

// pathOf returns [area, city, state, country] for an area node
func (s *LocationService) pathOf(ctx context.Context, areaID uuid.UUID) ([]location.Location, error) {
	path, err := location.Ancestors(ctx, s.locations, areaID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	if path[0].Type != location.TypeArea {
		return nil, shared.ErrInvalidInput.WithMessage(
			fmt.Sprintf("location %s is a %s, not an Area", areaID, path[0].Type))
	}
	if len(path) != location.MaxDepth {
		return nil, location.ErrTreeTooDeep.WithMessage(
			fmt.Sprintf("area %s has a broken ancestry of %d levels", areaID, len(path)))
	}
	return path, nil
}

func (s *LocationService) addressPath(ctx context.Context, addressID uuid.UUID) (uuid.UUID, []location.Location, error) {
	addr, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, nil, shared.ErrNotFound.WithMessage("Address not found")
		}
		return uuid.Nil, nil, err
	}
	path, err := s.pathOf(ctx, addr.LocationID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return addr.ID, path, nil
}

func summary(l location.Location) location.Summary {
	return location.Summary{ID: l.ID, Name: l.Name}
}
