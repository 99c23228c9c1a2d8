package catalog

import (
	"net/http"
	"strings"

	"libraryapi/internal/book"
	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{service: svc}
}

type createBookReq struct {
	ISBN            string `json:"isbn" validate:"required,isbn"`
	Title           string `json:"title" validate:"required,max=300"`
	Author          string `json:"author" validate:"required,max=200"`
	PublicationYear *int   `json:"publication_year" validate:"omitempty,gte=0,lte=9999"`
	TotalCopies     int    `json:"total_copies" validate:"gte=0"`
	AvailableCopies *int   `json:"available_copies" validate:"omitempty,gte=0"`
}

type updateBookReq struct {
	ISBN            string `json:"isbn" validate:"required,isbn"`
	Title           string `json:"title" validate:"required,max=300"`
	Author          string `json:"author" validate:"required,max=200"`
	PublicationYear *int   `json:"publication_year" validate:"omitempty,gte=0,lte=9999"`
	TotalCopies     *int   `json:"total_copies" validate:"required,gte=0"`
	AvailableCopies *int   `json:"available_copies" validate:"required,gte=0"`
}

// Create handles POST /v1/books
// @Summary Add a book to the catalog
// @Tags books
// @Accept json
// @Produce json
// @Param request body createBookReq true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.ValidationFailed(w, r, validationErrors)
		return
	}

	b, err := h.service.Create(r.Context(), CreateInput{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, b)
}

// List handles GET /v1/books
// @Summary List books
// @Tags books
// @Produce json
// @Param status query string false "AVAILABLE or UNAVAILABLE"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	status := book.Status(strings.ToUpper(r.URL.Query().Get("status")))
	if status != "" && !status.Valid() {
		httpx.ValidationFailed(w, r, []httpx.ErrorDetail{{Field: "status", Message: "status must be one of [AVAILABLE UNAVAILABLE]"}})
		return
	}
	page := httpx.PaginationFrom(r)

	books, total, err := h.service.List(r.Context(), book.Query{Status: status, Limit: page.PageSize, Offset: page.Offset()})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, page.Meta(total))
}

// Get handles GET /v1/books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, book.ErrNotFound)
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// GetByISBN handles GET /v1/books/isbn/{isbn}
// @Summary Get a book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN-10 or ISBN-13"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/isbn/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		httpx.WriteError(w, r, book.ErrNotFound)
		return
	}
	b, err := h.service.GetByISBN(r.Context(), isbn)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PUT /v1/books/{id}
// @Summary Replace a book's details and copy counts
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body updateBookReq true "Book"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, book.ErrNotFound)
		return
	}
	var req updateBookReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.ValidationFailed(w, r, validationErrors)
		return
	}

	b, err := h.service.Update(r.Context(), id, UpdateInput{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		TotalCopies:     *req.TotalCopies,
		AvailableCopies: *req.AvailableCopies,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /v1/books/{id}
// @Summary Remove a book without active loans
// @Tags books
// @Param id path string true "Book ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, book.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
