package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/shared/response"
	"bookshelf-api/pkg/logger"
)

type AuthorHandler struct {
	service author.Service
	books   book.Service
}

func NewAuthorHandler(svc author.Service, books book.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
		books:   books,
	}
}

// GetAll - GET /v1/authors
func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]author.AuthorResponse, len(authors))
	for i, a := range authors {
		resp[i] = *a.ToResponse()
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetByID - GET /v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, a.ToResponse())
}

// Create - POST /v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	req, ok := bindAuthorRequest(c)
	if !ok {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, a.ToResponse())
}

// Update - PUT /v1/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}

	req, ok := bindAuthorRequest(c)
	if !ok {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, a.ToResponse())
}

// Delete - DELETE /v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.NoContent(c)
}

// AuthorBooksResponse - GET /v1/authors/:id/books
type AuthorBooksResponse struct {
	Author *author.AuthorResponse `json:"author"`
	Books  []book.BookResponse    `json:"books"`
}

// GetBooks - GET /v1/authors/:id/books
func (h *AuthorHandler) GetBooks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	books, err := h.books.ListByAuthor(c.Request.Context(), id)
	if err != nil {
		logger.Error("listing books for author failed", err)
		response.InternalServerError(c)
		return
	}

	resp := AuthorBooksResponse{
		Author: a.ToResponse(),
		Books:  make([]book.BookResponse, len(books)),
	}
	for i, b := range books {
		resp.Books[i] = *b.ToResponse()
	}

	response.JSON(c, http.StatusOK, resp)
}

// bindAuthorRequest decodes and validates the request body, writing the
// 400 response itself when either step fails.
func bindAuthorRequest(c *gin.Context) (*author.AuthorRequest, bool) {
	var req author.AuthorRequest
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

// respondError is the single dispatch point from service errors to wire
// responses. Internal errors are logged and replaced with the generic
// message.
func (h *AuthorHandler) respondError(c *gin.Context, err error) {
	status := author.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("author request failed", err)
		response.InternalServerError(c)
		return
	}
	response.ErrorResponse(c, status, author.ToErrorCode(err), err.Error())
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
