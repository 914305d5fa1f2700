package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookreview-backend/internal/domains/genre/model"
	"bookreview-backend/internal/domains/genre/service"
	"bookreview-backend/internal/shared/response"
)

type GenreHandler struct {
	genreService service.ServiceInterface
}

func NewGenreHandler(genreService service.ServiceInterface) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid genre id")
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	var ve validation.Errors
	switch {
	case errors.Is(err, model.ErrGenreNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrDuplicateGenre):
		response.Conflict(c, err.Error())
	case errors.As(err, &ve):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}

// Create adds a genre
// POST /api/v1/genres (admin)
func (h *GenreHandler) Create(c *gin.Context) {
	var req model.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.genreService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID fetches one genre
// GET /api/v1/genres/:id
func (h *GenreHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.genreService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List pages through genres
// GET /api/v1/genres
func (h *GenreHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	genres, total, err := h.genreService.List(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, genres, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Update replaces a genre's fields
// PUT /api/v1/genres/:id (admin)
func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.genreService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete removes a genre
// DELETE /api/v1/genres/:id (admin)
func (h *GenreHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.genreService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
