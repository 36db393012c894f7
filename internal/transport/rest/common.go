// Package rest provides HTTP handlers for product and inventory operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/abgdnv/goinventory/internal/errors"
	"github.com/abgdnv/goinventory/internal/store"
	"github.com/abgdnv/goinventory/pkg/web"
	"github.com/go-playground/validator/v10"
)

// decodeAndValidate decodes the request body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			// If the error is a validation error, we can extract field-specific errors.
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "max", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondServiceError maps service-layer errors to HTTP responses: typed
// validation errors become 400, not-found sentinels become 404, anything
// else is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	switch {
	case apperrors.IsValidation(err):
		logger.WarnContext(r.Context(), "Request rejected", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		logger.WarnContext(r.Context(), "Resource not found", "error", err)
		web.RespondError(w, logger, http.StatusNotFound, notFoundMessage(err))
	default:
		logger.ErrorContext(r.Context(), fallback, "error", err)
		web.RespondError(w, logger, http.StatusInternalServerError, fallback)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, apperrors.ErrInventoryNotFound):
		return "Inventory not found"
	default:
		return "Not found"
	}
}

// queryFloat reads an optional float query parameter. Returns nil when the
// parameter is absent and writes a 400 response when it is malformed.
func queryFloat(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (*float64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, raw))
		return nil, false
	}
	return &value, true
}

// queryBool reads an optional boolean query parameter.
func queryBool(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (*bool, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s value: %s", key, raw))
		return nil, false
	}
	return &value, true
}

// queryInt64 reads an optional 64-bit integer query parameter.
func queryInt64(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (*int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, raw))
		return nil, false
	}
	return &value, true
}

// queryInt32 reads an optional 32-bit integer query parameter.
func queryInt32(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (*int32, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, raw))
		return nil, false
	}
	value32 := int32(value)
	return &value32, true
}

// Paging defaults applied when the query parameters are absent.
const (
	defaultPageSize = 20
	defaultSortKey  = "id"
)

// parsePageRequest reads the page, size and sort query parameters.
// Page numbering is zero-based; missing parameters fall back to the
// first page of size 20 sorted by id.
func parsePageRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (store.PageRequest, bool) {
	page, ok := web.ParseOptionalGte(r, w, logger, "page", 0, 0)
	if !ok {
		return store.PageRequest{}, false
	}
	size, ok := web.ParseOptionalGt(r, w, logger, "size", 0, defaultPageSize)
	if !ok {
		return store.PageRequest{}, false
	}
	sort := r.URL.Query().Get("sort")
	if sort == "" {
		sort = defaultSortKey
	}
	return store.PageRequest{
		Page: page,
		Size: size,
		Sort: sort,
	}, true
}
