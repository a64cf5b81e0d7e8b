package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopcart/backend/internal/application/catalog"
)

// ProductHandler serves the public catalog: product search, detail, home
// page sections and categories
type ProductHandler struct {
	BaseHandler
	productService  *catalogapp.ProductService
	categoryService *catalogapp.CategoryService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, categoryService *catalogapp.CategoryService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		categoryService: categoryService,
	}
}

// Search godoc
// @Summary      Search products
// @Description  Paginated product listing with text, category, brand, price and availability filters
// @Tags         products
// @Produce      json
// @Param        q query string false "Search term (name, brand, model)"
// @Param        category query string false "Category ID" format(uuid)
// @Param        brand query string false "Brand"
// @Param        minAmount query number false "Minimum price"
// @Param        maxAmount query number false "Maximum price"
// @Param        available query bool false "Only products in stock"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20) maximum(100)
// @Param        sort query string false "Sort field" Enums(created_at, updated_at, name, brand, amount, sold_quantity)
// @Param        order query string false "Sort order" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductListItem,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *ProductHandler) Search(c *gin.Context) {
	var req catalogapp.SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.productService.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get product by ID
// @Description  Product detail with stock per store. is_favorite is set when the caller is authenticated
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id, optionalUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Home godoc
// @Summary      Home page sections
// @Description  Best selling products of every category
// @Tags         products
// @Produce      json
// @Param        limit query int false "Products per category" default(8)
// @Success      200 {object} dto.Response{data=[]catalogapp.HomeSection}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/home [get]
func (h *ProductHandler) Home(c *gin.Context) {
	limit, err := queryInt(c, "limit", catalogapp.DefaultHomeProductsPerCategory)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	sections, err := h.productService.Home(c.Request.Context(), min(limit, 50))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sections)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// GetCategory godoc
// @Summary      Get category by ID
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/{id} [get]
func (h *ProductHandler) GetCategory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}
