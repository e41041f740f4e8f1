package handler

import (
	"strconv"

	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/product"
	"github.com/fekuna/kitmed-catalog-service/internal/product/dto"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// --- Public catalog ---

// PublicList serves GET /api/products.
func (h *ProductHandler) PublicList(c *gin.Context) {
	page, pageSize := httpx.Pagination(c, 12, 100)
	input := &dto.ListPublishedInput{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Partner:  c.Query("partner"),
		Featured: httpx.QueryBool(c, "featured"),
		Sort:     c.Query("sort"),
		Locale:   httpx.Locale(c),
		Page:     page,
		PageSize: pageSize,
	}

	products, total, err := h.uc.ListPublished(c.Request.Context(), input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, products, input.Page, input.PageSize, total)
}

func (h *ProductHandler) PublicGet(c *gin.Context) {
	p, err := h.uc.GetPublishedBySlug(c.Request.Context(), c.Param("slug"), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

// PublicRelated serves GET /api/products/:slug/related?limit=.
func (h *ProductHandler) PublicRelated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	related, err := h.uc.Related(c.Request.Context(), c.Param("slug"), httpx.Locale(c), limit)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, related)
}

// --- Admin ---

func (h *ProductHandler) Create(c *gin.Context) {
	var input dto.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	page, pageSize := httpx.Pagination(c, 20, 100)
	filters := &dto.ProductFilters{
		Status:      c.Query("status"),
		PartnerID:   c.Query("partner_id"),
		IsFeatured:  httpx.QueryBool(c, "is_featured"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Locale:      httpx.Locale(c),
		Page:        page,
		PageSize:    pageSize,
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filters.CategoryIDs = []string{categoryID}
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, products, page, pageSize, total)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Deleted(c)
}
