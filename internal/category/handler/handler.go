package handler

import (
	"github.com/fekuna/kitmed-catalog-service/internal/category"
	"github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

// Tree serves GET /api/categories.
func (h *CategoryHandler) Tree(c *gin.Context) {
	roots, err := h.uc.GetTree(c.Request.Context(), httpx.Locale(c), true)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, roots)
}

// GetBySlug serves GET /api/categories/:slug with the breadcrumb trail.
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	locale := httpx.Locale(c)

	cat, err := h.uc.GetCategoryBySlug(ctx, c.Param("slug"), locale)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	crumbs, err := h.uc.Breadcrumb(ctx, cat.ID, locale)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	httpx.OK(c, gin.H{
		"category":   cat,
		"breadcrumb": crumbs,
	})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, cat)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	if c.Query("view") == "tree" {
		roots, err := h.uc.GetTree(c.Request.Context(), httpx.Locale(c), false)
		if err != nil {
			httpx.Error(c, h.logger, err)
			return
		}
		httpx.OK(c, roots)
		return
	}

	page, pageSize := httpx.Pagination(c, 50, 200)
	filters := &dto.CategoryFilters{
		Kind:     c.Query("kind"),
		IsActive: httpx.QueryBool(c, "is_active"),
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
	if parent, ok := c.GetQuery("parent_id"); ok {
		filters.ParentID = &parent
	}

	cats, total, err := h.uc.ListCategories(c.Request.Context(), filters, httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, cats, page, pageSize, total)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.ID = c.Param("id")

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Deleted(c)
}
