package patron

import (
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type patronReq struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email,max=254"`
	NationalID string `json:"national_id" validate:"required,max=64"`
	Status     string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (req patronReq) input() Input {
	return Input{
		Name:       req.Name,
		Email:      req.Email,
		NationalID: req.NationalID,
		Status:     Status(req.Status),
	}
}

func decodePatronReq(w http.ResponseWriter, r *http.Request) (patronReq, bool) {
	var req patronReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r)
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.NationalID = strings.TrimSpace(req.NationalID)
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.ValidationFailed(w, r, validationErrors)
		return req, false
	}
	return req, true
}

// Create handles POST /v1/patrons
// @Summary Register a patron
// @Tags patrons
// @Accept json
// @Produce json
// @Param request body patronReq true "Patron"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/patrons [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePatronReq(w, r)
	if !ok {
		return
	}
	p, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, p)
}

// List handles GET /v1/patrons
// @Summary List patrons
// @Tags patrons
// @Produce json
// @Param status query string false "ACTIVE or INACTIVE"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/patrons [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	status := Status(strings.ToUpper(r.URL.Query().Get("status")))
	if status != "" && !status.Valid() {
		httpx.ValidationFailed(w, r, []httpx.ErrorDetail{{Field: "status", Message: "status must be one of [ACTIVE INACTIVE]"}})
		return
	}
	page := httpx.PaginationFrom(r)

	patrons, total, err := h.service.List(r.Context(), Query{Status: status, Limit: page.PageSize, Offset: page.Offset()})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, patrons, page.Meta(total))
}

// Get handles GET /v1/patrons/{id}
// @Summary Get a patron
// @Tags patrons
// @Produce json
// @Param id path string true "Patron ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/patrons/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, ErrNotFound)
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Update handles PUT /v1/patrons/{id}
// @Summary Replace a patron's details
// @Tags patrons
// @Accept json
// @Produce json
// @Param id path string true "Patron ID"
// @Param request body patronReq true "Patron"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/patrons/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, ErrNotFound)
		return
	}
	req, ok := decodePatronReq(w, r)
	if !ok {
		return
	}
	p, err := h.service.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Delete handles DELETE /v1/patrons/{id}
// @Summary Remove a patron without active loans
// @Tags patrons
// @Param id path string true "Patron ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/patrons/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
