package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	locationapp "github.com/shopcart/backend/internal/application/location"
	"github.com/shopcart/backend/internal/domain/shared"
)

// LocationHandler serves the State, City and Area hierarchy
type LocationHandler struct {
	BaseHandler
	locationService *locationapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *locationapp.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Children godoc
// @Summary      List child locations
// @Description  Nodes of the given type directly under parent. An empty parent or "0" is the country root; a name matches every node with that name and an unknown name gives an empty list
// @Tags         locations
// @Produce      json
// @Param        parent query string false "Parent ID or name"
// @Param        type query string true "Child type" Enums(State, City, Area)
// @Success      200 {object} dto.Response{data=[]location.Summary}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations/children [get]
func (h *LocationHandler) Children(c *gin.Context) {
	var q locationapp.ChildrenQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	children, err := h.locationService.ChildrenOf(c.Request.Context(), q.Parent, q.Type)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, children)
}

// Chain godoc
// @Summary      Area ancestry
// @Description  The Area with its City and State
// @Tags         locations
// @Produce      json
// @Param        id path string true "Area ID" format(uuid)
// @Success      200 {object} dto.Response{data=location.Chain}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations/areas/{id}/chain [get]
func (h *LocationHandler) Chain(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	chain, err := h.locationService.AncestorChainOf(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, chain)
}

// Mine godoc
// @Summary      My location
// @Description  Area, City and State of the caller's address
// @Tags         locations
// @Produce      json
// @Success      200 {object} dto.Response{data=locationapp.UserLocationResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations/me [get]
func (h *LocationHandler) Mine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	loc, err := h.locationService.UserLocation(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loc)
}

// InterState godoc
// @Summary      Inter-state delivery check
// @Description  Whether a delivery from the store to the caller crosses a state border
// @Tags         locations
// @Produce      json
// @Param        storeId query string true "Store ID" format(uuid)
// @Success      200 {object} dto.Response{data=locationapp.InterStateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations/interstate [get]
func (h *LocationHandler) InterState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	storeID, err := uuid.Parse(c.Query("storeId"))
	if err != nil {
		h.HandleError(c, shared.ErrInvalidInput.WithMessage("storeId must be a UUID"))
		return
	}

	result, err := h.locationService.IsInterStateDelivery(c.Request.Context(), userID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
