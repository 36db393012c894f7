package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParseValidateGte reads a required integer query parameter and checks that
// it is greater than or equal to min. Writes a 400 response and returns
// false when the parameter is absent, malformed or out of range.
func ParseValidateGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, min int64) (int32, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return 0, false
	}
	return parseBounded(w, logger, key, raw, func(v int64) bool { return v >= min })
}

// ParseOptionalGte reads an optional integer query parameter. An absent
// parameter yields fallback; a present one must parse and be >= min.
func ParseOptionalGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, min, fallback int64) (int32, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return int32(fallback), true
	}
	return parseBounded(w, logger, key, raw, func(v int64) bool { return v >= min })
}

// ParseOptionalGt reads an optional integer query parameter. An absent
// parameter yields fallback; a present one must parse and be strictly > min.
func ParseOptionalGt(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, min, fallback int64) (int32, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return int32(fallback), true
	}
	return parseBounded(w, logger, key, raw, func(v int64) bool { return v > min })
}

func parseBounded(w http.ResponseWriter, logger *slog.Logger, key, raw string, valid func(int64) bool) (int32, bool) {
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || !valid(value) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, raw))
		return 0, false
	}
	return int32(value), true
}
