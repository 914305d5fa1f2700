package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/service"
	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/internal/shared/response"
)

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid user id")
		return 0, false
	}
	return id, true
}

// Register creates a new account
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken), errors.Is(err, model.ErrEmailTaken):
			response.Conflict(c, err.Error())
		default:
			h.fail(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Login verifies credentials and returns a bearer token
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile returns the authenticated caller's account
// GET /api/v1/auth/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.userService.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListUsers pages through all accounts
// GET /api/v1/users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.ListUsers(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp.Users, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: resp.Total,
	})
}

// GetUser returns one account
// GET /api/v1/users/:id (admin)
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateUser updates account fields and roles
// PUT /api/v1/users/:id (admin)
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken), errors.Is(err, model.ErrEmailTaken):
			response.Conflict(c, err.Error())
		default:
			h.fail(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteUser removes an account
// DELETE /api/v1/users/:id (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fail maps the remaining error kinds to HTTP
func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case isValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
