package location

import (
	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/location"
)

// ChildrenQuery selects the children of a node.
// Parent may be a node ID or name; empty or "0" means the root.
type ChildrenQuery struct {
	Parent string `form:"parent" binding:"max=100"`
	Type   string `form:"type" binding:"required,oneof=State City Area state city area"`
}

// UserLocationResponse is the resolved location of a user's address
type UserLocationResponse struct {
	AddressID uuid.UUID        `json:"address_id"`
	Area      location.Summary `json:"area"`
	City      location.Summary `json:"city"`
	State     location.Summary `json:"state"`
}

// InterStateResponse tells whether a delivery crosses a state border
type InterStateResponse struct {
	InterState bool             `json:"inter_state"`
	UserState  location.Summary `json:"user_state"`
	StoreState location.Summary `json:"store_state"`
}
