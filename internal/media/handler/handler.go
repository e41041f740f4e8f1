package handler

import (
	"github.com/fekuna/kitmed-catalog-service/internal/media"
	"github.com/fekuna/kitmed-catalog-service/internal/media/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/media/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	uc     media.UseCase
	logger logger.ZapLogger
}

func NewMediaHandler(uc media.UseCase, log logger.ZapLogger) *MediaHandler {
	return &MediaHandler{
		uc:     uc,
		logger: log,
	}
}

// Upload serves POST /api/admin/uploads (multipart field "file"). Known
// content answers 200 with the existing record, new content 201.
func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		httpx.Error(c, h.logger, usecase.ErrEmpty)
		return
	}
	f, err := fh.Open()
	if err != nil {
		httpx.Error(c, h.logger, apperror.Internal(err))
		return
	}
	defer f.Close()

	m, err := h.uc.Upload(c.Request.Context(), &dto.UploadInput{
		FileName: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Content:  f,
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	if m.Duplicate {
		httpx.OK(c, m)
		return
	}
	httpx.Created(c, m)
}

func (h *MediaHandler) Get(c *gin.Context) {
	m, err := h.uc.GetMedia(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, m)
}
