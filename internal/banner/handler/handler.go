package handler

import (
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/banner"
	"github.com/fekuna/kitmed-catalog-service/internal/banner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	uc     banner.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewBannerHandler(uc banner.UseCase, log logger.ZapLogger) *BannerHandler {
	return &BannerHandler{
		uc:     uc,
		logger: log,
		now:    time.Now,
	}
}

// PublicList serves GET /api/banners?position=hero.
func (h *BannerHandler) PublicList(c *gin.Context) {
	position := model.BannerPosition(c.Query("position"))
	banners, err := h.uc.ListActive(c.Request.Context(), position, h.now(), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, banners)
}

func (h *BannerHandler) List(c *gin.Context) {
	page, pageSize := httpx.Pagination(c, 20, 100)
	filters := &dto.BannerFilters{
		Position: c.Query("position"),
		IsActive: httpx.QueryBool(c, "is_active"),
		Page:     page,
		PageSize: pageSize,
	}
	banners, total, err := h.uc.ListBanners(c.Request.Context(), filters, httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, banners, page, pageSize, total)
}

func (h *BannerHandler) Get(c *gin.Context) {
	b, err := h.uc.GetBanner(c.Request.Context(), c.Param("id"), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, b)
}

func (h *BannerHandler) Create(c *gin.Context) {
	var input dto.CreateBannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	b, err := h.uc.CreateBanner(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, b)
}

func (h *BannerHandler) Update(c *gin.Context) {
	var input dto.UpdateBannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.ID = c.Param("id")

	b, err := h.uc.UpdateBanner(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, b)
}

func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteBanner(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Deleted(c)
}
