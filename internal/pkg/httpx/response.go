package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/i18n"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxRequestID  = "request_id"
	ctxLocale     = "locale"
	ctxTranslator = "translator"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    MetaData    `json:"meta"`
}

type MetaData struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
	Locale    string `json:"locale,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
	Total     int    `json:"total,omitempty"`
}

func meta(c *gin.Context) MetaData {
	return MetaData{
		RequestID: c.GetString(ctxRequestID),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Locale:    Locale(c),
	}
}

// Locale returns the locale negotiated by the Localize middleware.
func Locale(c *gin.Context) string {
	if l := c.GetString(ctxLocale); l != "" {
		return l
	}
	return i18n.LocaleFR
}

// T localizes messageID for the current request.
func T(c *gin.Context, messageID string, data map[string]interface{}) string {
	if tr, ok := c.Get(ctxTranslator); ok {
		return tr.(*i18n.Translator).T(Locale(c), messageID, data)
	}
	return messageID
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta(c),
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: T(c, "Created", nil),
		Data:    data,
		Meta:    meta(c),
	})
}

// CreatedMessage responds 201 with a localized message instead of the
// generic one.
func CreatedMessage(c *gin.Context, messageID string, tdata map[string]interface{}, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: T(c, messageID, tdata),
		Data:    data,
		Meta:    meta(c),
	})
}

// Message responds 200 with a localized message and optional data.
func Message(c *gin.Context, messageID string, tdata map[string]interface{}, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: T(c, messageID, tdata),
		Data:    data,
		Meta:    meta(c),
	})
}

func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: T(c, "Deleted", nil),
		Meta:    meta(c),
	})
}

func Paginated(c *gin.Context, data interface{}, page, pageSize, total int) {
	m := meta(c)
	m.Page = page
	m.PageSize = pageSize
	m.Total = total
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    m,
	})
}

// Error renders err with the status of its kind. Internal causes are logged
// and replaced by a generic message.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	appErr := apperror.As(err)
	if appErr.Kind == apperror.KindInternal && log != nil {
		log.Error("request failed",
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	resp := APIResponse{
		Success: false,
		Message: T(c, appErr.MessageID, appErr.Data),
		Meta:    meta(c),
	}
	if len(appErr.Fields) > 0 {
		resp.Errors = appErr.Fields
	}
	c.AbortWithStatusJSON(appErr.Status(), resp)
}

// BindError renders a request binding/validation failure.
func BindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: T(c, "ValidationFailed", nil),
		Errors:  gin.H{"validation_error": err.Error()},
		Meta:    meta(c),
	})
}

// Pagination reads page/page_size query params with defaults and a cap.
func Pagination(c *gin.Context, defaultSize, maxSize int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
