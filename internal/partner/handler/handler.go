package handler

import (
	"github.com/fekuna/kitmed-catalog-service/internal/partner"
	"github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type PartnerHandler struct {
	uc     partner.UseCase
	logger logger.ZapLogger
}

func NewPartnerHandler(uc partner.UseCase, log logger.ZapLogger) *PartnerHandler {
	return &PartnerHandler{
		uc:     uc,
		logger: log,
	}
}

// PublicList serves GET /api/partners: active partners only.
func (h *PartnerHandler) PublicList(c *gin.Context) {
	active := true
	page, pageSize := httpx.Pagination(c, 24, 100)
	filters := &dto.PartnerFilters{
		IsActive:   &active,
		IsFeatured: httpx.QueryBool(c, "featured"),
		Search:     c.Query("q"),
		Page:       page,
		PageSize:   pageSize,
	}
	h.list(c, filters)
}

func (h *PartnerHandler) PublicGet(c *gin.Context) {
	p, err := h.uc.GetPartnerBySlug(c.Request.Context(), c.Param("slug"), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

func (h *PartnerHandler) List(c *gin.Context) {
	page, pageSize := httpx.Pagination(c, 20, 100)
	filters := &dto.PartnerFilters{
		IsActive:   httpx.QueryBool(c, "is_active"),
		IsFeatured: httpx.QueryBool(c, "is_featured"),
		Search:     c.Query("q"),
		Page:       page,
		PageSize:   pageSize,
	}
	h.list(c, filters)
}

func (h *PartnerHandler) list(c *gin.Context, filters *dto.PartnerFilters) {
	partners, total, err := h.uc.ListPartners(c.Request.Context(), filters, httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, partners, filters.Page, filters.PageSize, total)
}

func (h *PartnerHandler) Get(c *gin.Context) {
	p, err := h.uc.GetPartner(c.Request.Context(), c.Param("id"), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

func (h *PartnerHandler) Create(c *gin.Context) {
	var input dto.CreatePartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	p, err := h.uc.CreatePartner(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, p)
}

func (h *PartnerHandler) Update(c *gin.Context) {
	var input dto.UpdatePartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdatePartner(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

func (h *PartnerHandler) Delete(c *gin.Context) {
	if err := h.uc.DeletePartner(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Deleted(c)
}
