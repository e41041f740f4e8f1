package handler

import (
	"io"
	"mime/multipart"

	"github.com/fekuna/kitmed-catalog-service/internal/importer"
	"github.com/fekuna/kitmed-catalog-service/internal/importer/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

var errFileRequired = apperror.Invalid("ImportFileRequired")

type ImportHandler struct {
	uc     importer.UseCase
	logger logger.ZapLogger
}

func NewImportHandler(uc importer.UseCase, log logger.ZapLogger) *ImportHandler {
	return &ImportHandler{
		uc:     uc,
		logger: log,
	}
}

// input reads the multipart form: the sheet in "file", optional images and
// datasheets in "attachments".
func input(c *gin.Context) (*dto.ImportInput, func(), error) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["file"]) == 0 {
		return nil, nil, errFileRequired
	}
	sheet := form.File["file"][0]
	f, err := sheet.Open()
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	in := &dto.ImportInput{FileName: sheet.Filename, Content: f}
	for _, fh := range form.File["attachments"] {
		in.Attachments = append(in.Attachments, attachment(fh))
	}
	return in, func() { f.Close() }, nil
}

func attachment(fh *multipart.FileHeader) dto.Attachment {
	return dto.Attachment{
		FileName: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func translate(c *gin.Context) func(string, map[string]interface{}) string {
	return func(id string, data map[string]interface{}) string {
		return httpx.T(c, id, data)
	}
}

// Validate serves POST /api/admin/import/validate.
func (h *ImportHandler) Validate(c *gin.Context) {
	in, done, err := input(c)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	defer done()

	report, err := h.uc.Validate(c.Request.Context(), in)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	dto.Localize(report.Errors, translate(c))
	httpx.OK(c, report)
}

func (h *ImportHandler) Import(c *gin.Context) {
	in, done, err := input(c)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	defer done()

	result, err := h.uc.Import(c.Request.Context(), in)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	dto.Localize(result.Errors, translate(c))
	httpx.OK(c, result)
}
