// Package request parses request bodies and common URL and query parameters.
package request

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/pkg/apperr"
)

// ErrInvalidBody is returned for a body that is not valid JSON for the target.
var ErrInvalidBody = apperr.Validation("Invalid request body")

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// DecodeJSON decodes the request body into v. Field decoders that fail with
// an application error, such as an out of range amount, keep their message.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return ErrInvalidBody
	}
	return nil
}

// UUIDParam parses the named chi URL parameter as a UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Pagination reads page and per_page from the query string, falling back to
// page 1 and DefaultPerPage. per_page is capped at MaxPerPage.
func Pagination(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}
