package handler

import (
	"bufio"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopcart/backend/internal/application/catalog"
	"github.com/shopcart/backend/internal/interfaces/http/dto"
)

// PhotoFormField is the multipart field carrying a product photo
const PhotoFormField = "photo"

// InventoryHandler serves the store administration endpoints: stock levels,
// availability refresh and product photos
type InventoryHandler struct {
	BaseHandler
	availabilityService *catalogapp.AvailabilityService
	photoService        *catalogapp.PhotoService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(availabilityService *catalogapp.AvailabilityService, photoService *catalogapp.PhotoService) *InventoryHandler {
	return &InventoryHandler{
		availabilityService: availabilityService,
		photoService:        photoService,
	}
}

// SetStock godoc
// @Summary      Set store stock
// @Description  Set the quantity a store holds of a product and recompute availability
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        storeId path string true "Store ID" format(uuid)
// @Param        request body catalogapp.SetStockRequest true "New quantity"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/stores/{storeId}/stock [put]
func (h *InventoryHandler) SetStock(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	storeID, err := parseUUIDParam(c, "storeId")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req catalogapp.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.availabilityService.SetStock(c.Request.Context(), productID, storeID, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// RefreshAvailability godoc
// @Summary      Refresh availability
// @Description  Recompute the availability flag of each product from its store stock.
// @Description  Every product commits on its own; a partial failure answers 207 with the failures listed.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.RefreshAvailabilityRequest true "Products to refresh"
// @Success      200 {object} dto.Response{data=catalogapp.RefreshAvailabilityResult}
// @Success      207 {object} dto.Response{data=catalogapp.RefreshAvailabilityResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/availability/refresh [post]
func (h *InventoryHandler) RefreshAvailability(c *gin.Context) {
	var req catalogapp.RefreshAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.availabilityService.RefreshAvailability(c.Request.Context(), req.ProductIDs)
	switch {
	case err == nil:
		h.Success(c, result)
	case result != nil && len(result.Failed) < result.Processed:
		c.JSON(http.StatusMultiStatus, dto.NewSuccessResponse(result))
	default:
		h.HandleError(c, err)
	}
}

// UploadPhoto godoc
// @Summary      Upload product photo
// @Description  Store a photo in object storage and make it the product photo
// @Tags         inventory
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        photo formData file true "Photo (jpeg, png or webp)"
// @Success      200 {object} dto.Response{data=catalogapp.PhotoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/photo [put]
func (h *InventoryHandler) UploadPhoto(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	header, err := c.FormFile(PhotoFormField)
	if err != nil {
		h.BadRequest(c, "Multipart field \""+PhotoFormField+"\" is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable photo")
		return
	}
	defer file.Close()

	// Browsers often send application/octet-stream; sniff the bytes then.
	body := bufio.NewReaderSize(file, 512)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := body.Peek(512)
		contentType = http.DetectContentType(head)
	}

	photo, err := h.photoService.Upload(c.Request.Context(), productID, catalogapp.PhotoUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, photo)
}

// DeletePhoto godoc
// @Summary      Delete product photo
// @Tags         inventory
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/photo [delete]
func (h *InventoryHandler) DeletePhoto(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
