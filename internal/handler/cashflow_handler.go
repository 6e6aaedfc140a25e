package handler

import (
	"net/http"

	"github.com/boddenberg/fluxo-caixa-go/internal/chart"
	"github.com/boddenberg/fluxo-caixa-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// GET /v1/cashflow/periods
// ============================================================

func periodsHandler(svc *service.CashFlowService, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/cashflow/periods")
		defer span.End()

		resp := svc.ListPeriods(parseBool(r, "mobile"))
		f := formatterFor(queryOr(r, "locale", opts.Locale), "")
		for i := range resp.Sections {
			for j := range resp.Sections[i].Options {
				o := &resp.Sections[i].Options[j]
				o.Label = f.PeriodInfo(o.Value, o.Grouping).Label
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// GET /v1/cashflow/chart
// ============================================================

func chartHandler(svc *service.CashFlowService, logger *zap.Logger, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cashflow/chart")
		defer span.End()

		q, err := parseChartQuery(r, opts)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.String("chart.period", string(q.Period)))

		resp, err := svc.GetChartResponse(ctx, q)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// GET /v1/cashflow/summary
// ============================================================

func summaryHandler(svc *service.CashFlowService, logger *zap.Logger, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cashflow/summary")
		defer span.End()

		q, err := parseChartQuery(r, opts)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.String("chart.period", string(q.Period)))

		summary, err := svc.GetSummary(ctx, q)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		summary.Label = formatterFor(q.Locale, "").PeriodInfo(summary.Period, summary.Grouping).Label
		writeJSON(w, http.StatusOK, summary)
	}
}

// ============================================================
// GET /v1/cashflow/overview
// ============================================================

func overviewHandler(svc *service.CashFlowService, logger *zap.Logger, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cashflow/overview")
		defer span.End()

		at, err := parseDate(r, opts.Location)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		currency, err := chart.ValidateCurrency(queryOr(r, "currency", opts.Currency))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := svc.GetOverview(ctx, at)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		f := formatterFor(queryOr(r, "locale", opts.Locale), currency)
		resp.Locale = f.Locale()
		resp.Currency = f.Currency()
		for i := range resp.Summaries {
			s := &resp.Summaries[i]
			s.Label = f.PeriodInfo(s.Period, s.Grouping).Label
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func formatterFor(locale, currency string) *chart.DateFormatter {
	opts := chart.DefaultFormattingOptions()
	opts.Locale = locale
	opts.Currency = currency
	return chart.NewDateFormatter(opts)
}
