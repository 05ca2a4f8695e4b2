package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/service"
	"github.com/jdewit/bettrack/internal/stats"
)

// writeJSON marshals v as JSON and writes it to the response with the given
// HTTP status code. If marshaling fails, it falls back to a plain-text 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError sends a JSON-formatted error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service-layer errors to HTTP status codes. Unknown
// errors are logged and answered with a generic 500 so internals never leak
// to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, msg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "session expired")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrLockHeld):
		writeError(w, http.StatusConflict, "operation already in progress")
	case errors.Is(err, service.ErrExportsDisabled):
		writeError(w, http.StatusServiceUnavailable, "exports are not configured")
	default:
		logger.ErrorContext(r.Context(), "handler: "+msg,
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

// dateLayout is the wire format for day-granularity dates in query
// parameters and request bodies.
const dateLayout = "2006-01-02"

// parsePage extracts the 1-based page number from the query string,
// defaulting to 1.
func parsePage(r *http.Request) int {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	return page
}

// parseFilter builds the view filter from the standard query parameters
// shared by the history and dashboard endpoints. Malformed dates are
// ignored rather than rejected; the views fall back to unfiltered.
func parseFilter(r *http.Request) stats.Filter {
	q := r.URL.Query()

	f := stats.Filter{
		Outcome: stats.FilterAll,
		Search:  q.Get("search"),
	}
	if v := q.Get("outcome"); v != "" {
		f.Outcome = stats.OutcomeFilter(v)
	}
	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			f.DateTo = &t
		}
	}
	return f
}

// pathParam extracts a named path parameter from the request using Go 1.22+
// built-in routing (http.Request.PathValue).
func pathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}
