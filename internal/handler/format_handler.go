package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/boddenberg/fluxo-caixa-go/internal/chart"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// GET /v1/format/currency
// ============================================================

func formatCurrencyHandler(logger *zap.Logger, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/format/currency")
		defer span.End()

		raw := strings.TrimSpace(r.URL.Query().Get("value"))
		if raw == "" {
			handleServiceError(w, &domain.ErrValidation{Field: "value", Message: "value is required"}, logger)
			return
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			handleServiceError(w, &domain.ErrValidation{Field: "value", Message: "not a number: " + strconv.Quote(raw)}, logger)
			return
		}
		currency, err := chart.ValidateCurrency(queryOr(r, "currency", opts.Currency))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		locale := chart.ResolveLocale(queryOr(r, "locale", opts.Locale))

		formatted := chart.FormatCurrency(value, locale, currency)
		if parseBool(r, "whole") {
			formatted = chart.FormatCurrencyWhole(value, locale, currency)
		}

		writeJSON(w, http.StatusOK, domain.CurrencyFormat{
			Formatted: formatted,
			Value:     value,
			Locale:    locale,
			Currency:  currency,
		})
	}
}

// ============================================================
// GET /v1/format/currency-input
// ============================================================

func currencyInputHandler(logger *zap.Logger, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/format/currency-input")
		defer span.End()

		currency, err := chart.ValidateCurrency(queryOr(r, "currency", opts.Currency))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		locale := chart.ResolveLocale(queryOr(r, "locale", opts.Locale))

		formatted, value := chart.ParseCurrencyInput(r.URL.Query().Get("raw"), locale, currency)
		writeJSON(w, http.StatusOK, domain.CurrencyFormat{
			Formatted: formatted,
			Value:     value,
			Locale:    locale,
			Currency:  currency,
		})
	}
}
