package handler

import (
	"github.com/fekuna/kitmed-catalog-service/internal/auth"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/user"
	"github.com/fekuna/kitmed-catalog-service/internal/user/dto"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

// actorID returns the authenticated caller's id. The admin routes always run
// behind auth.Authenticate.
func actorID(c *gin.Context) (string, bool) {
	id := auth.GetUserID(c.Request.Context())
	if id == "" {
		httpx.Error(c, nil, apperror.Unauthorized("MissingToken"))
		return "", false
	}
	return id, true
}

// Login serves POST /api/auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	res, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, res)
}

func (h *UserHandler) Me(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		return
	}
	u, err := h.uc.Me(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, u)
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := httpx.Pagination(c, 20, 100)
	filters := &dto.UserFilters{
		Role:     c.Query("role"),
		IsActive: httpx.QueryBool(c, "is_active"),
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
	users, total, err := h.uc.ListUsers(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, users, page, pageSize, total)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		return
	}
	var input dto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	u, err := h.uc.CreateUser(c.Request.Context(), id, &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		return
	}
	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	input.ID = c.Param("id")

	u, err := h.uc.UpdateUser(c.Request.Context(), id, &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteUser(c.Request.Context(), id, c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Deleted(c)
}

// SetPermissions serves PUT /api/admin/users/:id/permissions.
func (h *UserHandler) SetPermissions(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		return
	}
	var input dto.SetPermissionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BindError(c, err)
		return
	}
	u, err := h.uc.SetPermissions(c.Request.Context(), id, c.Param("id"), input.Permissions)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, u)
}
