package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/chart"
	"github.com/boddenberg/fluxo-caixa-go/internal/dateutil"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
	"github.com/boddenberg/fluxo-caixa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseBool reads a boolean query flag; absent or malformed → false.
func parseBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

// parseDate reads ?date=YYYY-MM-DD in loc. Absent → nil.
func parseDate(r *http.Request, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return nil, nil
	}
	d, err := dateutil.FromISODate(raw, loc)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "date", Message: "expected YYYY-MM-DD, got " + strconv.Quote(raw)}
	}
	return &d, nil
}

// parseChartQuery builds the query shared by the chart and summary routes.
// A missing period uses the device default; unknown periods fall back silently.
func parseChartQuery(r *http.Request, opts Options) (service.ChartQuery, error) {
	q := r.URL.Query()

	at, err := parseDate(r, opts.Location)
	if err != nil {
		return service.ChartQuery{}, err
	}

	period := chart.DefaultPeriod(parseBool(r, "mobile"))
	if raw := q.Get("period"); strings.TrimSpace(raw) != "" {
		period = chart.ParsePeriod(raw)
	}

	return service.ChartQuery{
		Period:   period,
		At:       at,
		Locale:   queryOr(r, "locale", opts.Locale),
		Currency: queryOr(r, "currency", opts.Currency),
		Refresh:  parseBool(r, "refresh"),
	}, nil
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return fallback
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation
	var unavailable *domain.ErrUnavailable

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unavailable):
		logger.Error("component unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("request timeout", zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, context.Canceled):
		logger.Debug("request cancelled", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
