package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/unischolar/scholarly-search-service/internal/observability"
)

// Query parameter limits.
const (
	maxQueryLength = 1000
	maxLimit       = 100
)

// searchParams holds the validated query parameters shared by the search
// and author endpoints.
type searchParams struct {
	Query string `validate:"required,min=1,max=1000"`
	Limit int    `validate:"min=0,max=100"`
}

// parseSearchParams extracts and validates q and limit from the request.
// A zero limit means "use the configured default".
func (s *Server) parseSearchParams(r *http.Request) (searchParams, error) {
	params := searchParams{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("limit must be an integer")
		}
		if limit < 1 {
			return params, fmt.Errorf("limit must be at least 1")
		}
		params.Limit = limit
	}

	if err := s.validate.Struct(params); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return params, describeValidationError(validationErrs[0])
		}
		return params, err
	}
	return params, nil
}

// describeValidationError maps a validator field error to a client-facing
// message.
func describeValidationError(fieldErr validator.FieldError) error {
	switch fieldErr.Field() {
	case "Query":
		if fieldErr.Tag() == "max" {
			return fmt.Errorf("q must be at most %d characters", maxQueryLength)
		}
		return fmt.Errorf("q is required")
	case "Limit":
		return fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	return fmt.Errorf("invalid request parameters")
}

// handleSearch handles GET /api/v1/search.
//
// Provider failures never fail the request: the response is always 200 with
// whatever the surviving providers returned, down to an empty result set.
// Only invalid input yields a 400.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := observability.WithQuery(r.Context(), params.Query)
	result := s.search.Search(ctx, params.Query, params.Limit)
	writeJSON(w, http.StatusOK, result)
}

// handleSearchAuthors handles GET /api/v1/authors.
func (s *Server) handleSearchAuthors(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := observability.WithQuery(r.Context(), params.Query)
	result := s.search.SearchAuthors(ctx, params.Query, params.Limit)
	writeJSON(w, http.StatusOK, result)
}
