package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/evgenygerasimov/commerce-api/internal/repository"
	"github.com/evgenygerasimov/commerce-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// pathID extracts and validates a numeric id path parameter. On failure
// it writes the 400 response and returns false.
func pathID(w http.ResponseWriter, r *http.Request, param string, logger *slog.Logger) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Warn("invalid id format", "param", param, "value", raw)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", logger)
		return 0, false
	}
	return id, true
}

// writeServiceError maps workflow errors onto the HTTP contract:
// lookup misses and out-of-stock failures are plain 404 messages,
// conversion failures are plain 400 messages, everything else is a 500.
func writeServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case repository.IsNotFound(err), service.IsOutOfStock(err):
		WriteMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnmarshal), errors.Is(err, service.ErrMarshal):
		WriteMessage(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
