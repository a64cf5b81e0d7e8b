package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/shopcart/backend/internal/application/catalog"
)

// FavoriteHandler manages the caller's favorite products
type FavoriteHandler struct {
	BaseHandler
	favoriteService *catalogapp.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService *catalogapp.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// List godoc
// @Summary      List favorites
// @Description  Products the caller marked as favorite
// @Tags         favorites
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.FavoriteResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	favorites, err := h.favoriteService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, favorites)
}

// Status godoc
// @Summary      Favorite status
// @Description  Whether a product is a favorite of the caller
// @Tags         favorites
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.FavoriteStatusResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /favorites/{productId} [get]
func (h *FavoriteHandler) Status(c *gin.Context) {
	userID, productID, ok := h.identify(c)
	if !ok {
		return
	}

	status, err := h.favoriteService.IsFavorite(c.Request.Context(), productID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// Add godoc
// @Summary      Add favorite
// @Description  Mark a product as favorite. Adding an existing favorite is a no-op
// @Tags         favorites
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.FavoriteStatusResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /favorites/{productId} [put]
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, productID, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.favoriteService.AddFavorite(c.Request.Context(), productID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.FavoriteStatusResponse{ProductID: productID, IsFavorite: true})
}

// Remove godoc
// @Summary      Remove favorite
// @Description  Unmark a product. Removing a missing favorite is a no-op
// @Tags         favorites
// @Param        productId path string true "Product ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /favorites/{productId} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, productID, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), productID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// identify resolves the caller before the product, so an anonymous request
// is always a 401
func (h *FavoriteHandler) identify(c *gin.Context) (userID, productID uuid.UUID, ok bool) {
	uid, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return userID, productID, false
	}
	pid, err := parseUUIDParam(c, "productId")
	if err != nil {
		h.HandleError(c, err)
		return userID, productID, false
	}
	return uid, pid, true
}
