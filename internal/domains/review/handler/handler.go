package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/service"
	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/internal/shared/response"
)

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func parseParamID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+label)
		return 0, false
	}
	return id, true
}

func identity(c *gin.Context) (auth.Identity, bool) {
	ident, ok := auth.FromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
	}
	return ident, ok
}

func fail(c *gin.Context, err error) {
	var ve validation.Errors
	switch {
	case errors.Is(err, model.ErrReviewNotFound),
		errors.Is(err, model.ErrBookNotFound),
		errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.As(err, &ve):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// Create posts the caller's review of a book
// POST /api/v1/books/:id/reviews (auth)
func (h *ReviewHandler) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	bookID, ok := parseParamID(c, "id", "book id")
	if !ok {
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.Create(c.Request.Context(), ident, bookID, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID fetches one review
// GET /api/v1/reviews/:id
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, ok := parseParamID(c, "id", "review id")
	if !ok {
		return
	}

	resp, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetMine fetches the caller's own review of a book
// GET /api/v1/books/:id/reviews/me (auth)
func (h *ReviewHandler) GetMine(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	bookID, ok := parseParamID(c, "id", "book id")
	if !ok {
		return
	}

	resp, err := h.reviewService.GetMyReviewForBook(c.Request.Context(), ident, bookID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListByBook pages through a book's reviews, newest first
// GET /api/v1/books/:id/reviews
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := parseParamID(c, "id", "book id")
	if !ok {
		return
	}

	page, limit := pagination(c)
	reviews, total, err := h.reviewService.ListByBook(c.Request.Context(), bookID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reviews, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ListByUser pages through a user's reviews, newest first
// GET /api/v1/users/:id/reviews
func (h *ReviewHandler) ListByUser(c *gin.Context) {
	userID, ok := parseParamID(c, "id", "user id")
	if !ok {
		return
	}

	page, limit := pagination(c)
	reviews, total, err := h.reviewService.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reviews, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Update edits the caller's review
// PUT /api/v1/reviews/:id (auth, owner or admin)
func (h *ReviewHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := parseParamID(c, "id", "review id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete removes the caller's review
// DELETE /api/v1/reviews/:id (auth, owner or admin)
func (h *ReviewHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := parseParamID(c, "id", "review id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), ident, id); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
