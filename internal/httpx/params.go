package httpx

import (
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = math.MaxInt32 / maxPageSize
)

// PathID returns the named path value when it is a well-formed UUID.
// Malformed ids cannot exist, so callers answer them with 404.
func PathID(r *http.Request, name string) (string, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Pagination is the page window requested through page and page_size.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.PageSize }

// Meta renders the pagination block of a list response.
func (p Pagination) Meta(total int) map[string]any {
	return map[string]any{
		"page":        p.Page,
		"page_size":   p.PageSize,
		"total":       total,
		"total_pages": (total + p.PageSize - 1) / p.PageSize,
	}
}

func PaginationFrom(r *http.Request) Pagination {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	page = min(page, maxPage)
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// NotFound writes the envelope for an unknown resource id.
func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, http.StatusNotFound, "NOT_FOUND", message, nil)
}
