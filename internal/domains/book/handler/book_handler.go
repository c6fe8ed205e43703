package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/shared/response"
	"bookshelf-api/pkg/logger"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{service: svc}
}

// GetAll - GET /v1/books?author=<id>
func (h *BookHandler) GetAll(c *gin.Context) {
	var filter book.BookFilter

	if authorStr := c.Query("author"); authorStr != "" {
		authorID, err := strconv.ParseInt(authorStr, 10, 64)
		if err != nil {
			response.ValidationFailed(c, map[string]string{"author": "must be an integer"})
			return
		}
		filter.AuthorID = &authorID
	}

	books, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]book.BookResponse, len(books))
	for i, b := range books {
		resp[i] = *b.ToResponse()
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetByID - GET /v1/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, book.ErrBookNotFound.Error())
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, b.ToResponse())
}

// Create - POST /v1/books
func (h *BookHandler) Create(c *gin.Context) {
	req, ok := bindBookRequest(c)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, b.ToResponse())
}

// Update - PUT /v1/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, book.ErrBookNotFound.Error())
		return
	}

	req, ok := bindBookRequest(c)
	if !ok {
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, b.ToResponse())
}

// Delete - DELETE /v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, book.ErrBookNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.NoContent(c)
}

func bindBookRequest(c *gin.Context) (*book.BookRequest, bool) {
	var req book.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return nil, false
	}

	if err := req.Validate(); err != nil {
		if fieldErrors, ok := err.(validation.Errors); ok {
			response.ValidationFailed(c, fieldErrors)
		} else {
			response.BadRequest(c, err.Error())
		}
		return nil, false
	}

	return &req, true
}

func (h *BookHandler) respondError(c *gin.Context, err error) {
	status := book.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("book request failed", err)
		response.InternalServerError(c)
		return
	}
	response.ErrorResponse(c, status, book.ToErrorCode(err), err.Error())
}

// parseID reads the :id path param. Non-numeric input is treated as no
// match, not a type error.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
