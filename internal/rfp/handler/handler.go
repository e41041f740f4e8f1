package handler

import (
	"github.com/fekuna/kitmed-catalog-service/internal/auth"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderCartID carries the anonymous draft id between the wizard and the API.
const HeaderCartID = httpx.HeaderCartID

type RFPHandler struct {
	uc     rfp.UseCase
	logger logger.ZapLogger
}

func NewRFPHandler(uc rfp.UseCase, log logger.ZapLogger) *RFPHandler {
	return &RFPHandler{
		uc:     uc,
		logger: log,
	}
}

// cartID returns the caller's cart id, issuing a fresh one when the header
// is missing or not a uuid. The id is always echoed back.
func cartID(c *gin.Context) string {
	id := c.GetHeader(HeaderCartID)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}
	c.Header(HeaderCartID, id)
	return id
}

// --- Public wizard ---

func (h *RFPHandler) GetCart(c *gin.Context) {
	view, err := h.uc.GetCart(c.Request.Context(), cartID(c), httpx.Locale(c))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, view)
}

func (h *RFPHandler) AddItem(c *gin.Context) {
	id := cartID(c)
	var input dto.AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.Locale = httpx.Locale(c)

	view, err := h.uc.AddItem(c.Request.Context(), id, &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, view)
}

func (h *RFPHandler) UpdateItem(c *gin.Context) {
	id := cartID(c)
	var input dto.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.ProductID = c.Param("productId")

	view, err := h.uc.UpdateItem(c.Request.Context(), id, &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, view)
}

func (h *RFPHandler) RemoveItem(c *gin.Context) {
	view, err := h.uc.RemoveItem(c.Request.Context(), cartID(c), c.Param("productId"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, view)
}

func (h *RFPHandler) SetContact(c *gin.Context) {
	id := cartID(c)
	var input model.RFPContact
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}

	view, err := h.uc.SetContact(c.Request.Context(), id, &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, view)
}

func (h *RFPHandler) SetDetails(c *gin.Context) {
	id := cartID(c)
	var input model.RFPDetails
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}

	view, err := h.uc.SetDetails(c.Request.Context(), id, &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, view)
}

func (h *RFPHandler) GoTo(c *gin.Context) {
	id := cartID(c)
	var input dto.GoToInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}

	view, err := h.uc.GoTo(c.Request.Context(), id, input.Step)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, view)
}

func (h *RFPHandler) ClearCart(c *gin.Context) {
	if err := h.uc.ClearCart(c.Request.Context(), cartID(c)); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Deleted(c)
}

// Submit serves POST /api/rfp/submit.
func (h *RFPHandler) Submit(c *gin.Context) {
	id := cartID(c)
	var input dto.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.Locale = httpx.Locale(c)

	req, err := h.uc.Submit(c.Request.Context(), id, &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.CreatedMessage(c, "RFPSubmitted",
		map[string]interface{}{"Reference": req.Reference},
		gin.H{"id": req.ID, "reference": req.Reference, "status": req.Status},
	)
}

// --- Admin ---

func (h *RFPHandler) List(c *gin.Context) {
	page, pageSize := httpx.Pagination(c, 20, 100)
	filters := &dto.RFPFilters{
		Status:   c.Query("status"),
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}

	requests, total, err := h.uc.ListRequests(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, requests, page, pageSize, total)
}

func (h *RFPHandler) Get(c *gin.Context) {
	req, err := h.uc.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, req)
}

func (h *RFPHandler) UpdateStatus(c *gin.Context) {
	var input dto.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.ID = c.Param("id")
	if u := auth.FromContext(c.Request.Context()); u != nil {
		input.ChangedBy = u.Email
	}

	req, err := h.uc.UpdateStatus(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, req)
}
