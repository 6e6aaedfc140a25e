package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/chart"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
	"github.com/boddenberg/fluxo-caixa-go/internal/infra/observability"
	"github.com/boddenberg/fluxo-caixa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Options carries the request defaults of the HTTP surface.
type Options struct {
	// Location interprets ?date= values. Defaults to time.Local.
	Location *time.Location
	// Locale and Currency apply when a request omits them.
	Locale   string
	Currency string
	// AllowedOrigins feeds the CORS policy of the dashboard.
	AllowedOrigins []string
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Locale == "" {
		o.Locale = chart.DefaultLocale
	}
	if o.Currency == "" {
		o.Currency = chart.DefaultCurrency
	}
	if len(o.AllowedOrigins) == 0 {
		o.AllowedOrigins = []string{"*"}
	}
	return o
}

// NewRouter wires middleware, operational endpoints and the /v1 API.
// A nil svc keeps the operational endpoints up and answers 503 on /v1/cashflow.
func NewRouter(svc *service.CashFlowService, metrics *observability.Metrics, logger *zap.Logger, opts Options) http.Handler {
	opts = opts.withDefaults()
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestTracer)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleServiceError(w, &domain.ErrNotFound{Resource: "route", ID: r.URL.Path}, logger)
	})

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc))
	r.Get("/readyz", readyzHandler(svc))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(requestStatusMiddleware(metrics))

		// =============================================
		// 1. Fluxo de caixa
		// =============================================
		r.Route("/cashflow", func(r chi.Router) {
			if svc == nil {
				r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					handleServiceError(w, &domain.ErrUnavailable{Component: "cash-flow service"}, logger)
				}))
				return
			}
			r.Get("/periods", periodsHandler(svc, opts))
			r.Get("/chart", chartHandler(svc, logger, opts))
			r.Get("/summary", summaryHandler(svc, logger, opts))
			r.Get("/overview", overviewHandler(svc, logger, opts))
		})

		// =============================================
		// 2. Formatação de moeda
		// =============================================
		r.Get("/format/currency", formatCurrencyHandler(logger, opts))
		r.Get("/format/currency-input", currencyInputHandler(logger, opts))

		// =============================================
		// 3. Métricas
		// =============================================
		r.Get("/metrics/cashflow", cashflowMetricsHandler(metrics))
	})

	return r
}

// ============================================================
// Operational
// ============================================================

// Component states ordered by severity.
var healthRank = map[string]int{"healthy": 0, "degraded": 1, "unhealthy": 2}

func worstStatus(components []domain.ServiceHealth) string {
	worst := "healthy"
	for _, c := range components {
		if healthRank[c.Status] > healthRank[worst] {
			worst = c.Status
		}
	}
	return worst
}

// healthzHandler builds today's chart as a liveness probe of the builder.
func healthzHandler(svc *service.CashFlowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checkedAt := time.Now().UTC().Format(time.RFC3339)
		builder := domain.ServiceHealth{Name: "chart-builder", Status: "unhealthy", LastChecked: checkedAt}

		if svc != nil {
			began := time.Now()
			_, err := svc.GetChart(r.Context(), service.ChartQuery{Period: domain.PeriodToday})
			builder.LatencyMs = time.Since(began).Milliseconds()
			builder.Status = "healthy"
			if err != nil {
				builder.Status = "degraded"
			}
		}

		components := []domain.ServiceHealth{
			{Name: "fluxo-caixa-api", Status: "healthy", LastChecked: checkedAt},
			builder,
		}
		writeJSON(w, http.StatusOK, domain.HealthStatus{Status: worstStatus(components), Services: components})
	}
}

func readyzHandler(svc *service.CashFlowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func cashflowMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.Snapshot())
	}
}
