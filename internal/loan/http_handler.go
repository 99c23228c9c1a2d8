package loan

import (
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
	"libraryapi/internal/patron"
)

type HTTPHandler struct {
	loans   *Service
	queries *QueryService
}

func NewHTTPHandler(loans *Service, queries *QueryService) *HTTPHandler {
	return &HTTPHandler{loans: loans, queries: queries}
}

type createLoanReq struct {
	PatronID string `json:"patron_id" validate:"required,uuid"`
	BookID   string `json:"book_id" validate:"required,uuid"`
}

// Create handles POST /v1/loans
// @Summary Lend a book to a patron
// @Tags loans
// @Accept json
// @Produce json
// @Param request body createLoanReq true "Loan"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/loans [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r)
		return
	}
	req.PatronID = strings.TrimSpace(req.PatronID)
	req.BookID = strings.TrimSpace(req.BookID)
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.ValidationFailed(w, r, validationErrors)
		return
	}

	v, err := h.loans.Create(r.Context(), strings.ToLower(req.PatronID), strings.ToLower(req.BookID))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, v)
}

// Return handles PATCH /v1/loans/{id}/return
// @Summary Return a lent book
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/loans/{id}/return [patch]
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, ErrNotFound)
		return
	}
	v, err := h.loans.Return(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, v, nil)
}

// List handles GET /v1/loans
// @Summary List all loans by loan date
// @Tags loans
// @Produce json
// @Param order query string false "asc or desc"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/loans [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	var order Order
	if raw := strings.ToLower(r.URL.Query().Get("order")); raw != "" {
		o, ok := ParseOrder(raw)
		if !ok {
			httpx.ValidationFailed(w, r, []httpx.ErrorDetail{{Field: "order", Message: "order must be one of [asc desc]"}})
			return
		}
		order = o
	}

	views, err := h.queries.ListAll(r.Context(), order)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, views, map[string]any{"total": len(views)})
}

// Overdue handles GET /v1/loans/overdue
// @Summary List active loans past their expected return date
// @Tags loans
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/loans/overdue [get]
func (h *HTTPHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	views, err := h.queries.ListOverdue(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, views, map[string]any{"total": len(views)})
}

// Get handles GET /v1/loans/{id}
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/loans/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, ErrNotFound)
		return
	}
	v, err := h.queries.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, v, nil)
}

// ListByPatron handles GET /v1/patrons/{id}/loans
// @Summary List a patron's loans
// @Tags loans
// @Produce json
// @Param id path string true "Patron ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/patrons/{id}/loans [get]
func (h *HTTPHandler) ListByPatron(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, patron.ErrNotFound)
		return
	}
	views, err := h.queries.ListByPatron(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, views, map[string]any{"total": len(views)})
}
