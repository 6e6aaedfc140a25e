package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/chart"
	"github.com/boddenberg/fluxo-caixa-go/internal/dateutil"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
	"github.com/boddenberg/fluxo-caixa-go/internal/infra/observability"
	"github.com/boddenberg/fluxo-caixa-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var tracer = otel.Tracer("service/cashflow")

const chartCacheName = "chart"

// ChartQuery selects a chart. A nil At means "now" on the service clock.
// Locale and Currency only affect rendered responses. Refresh drops the
// cached chart so fresh values are drawn.
type ChartQuery struct {
	Period   domain.TimePeriod
	At       *time.Time
	Locale   string
	Currency string
	Refresh  bool
}

// CashFlowService builds, caches and renders cash-flow charts.
type CashFlowService struct {
	builder        port.ChartBuilder
	clock          port.Clock
	cache          port.Cache[*domain.ChartConfig]
	metrics        *observability.Metrics
	logger         *zap.Logger
	maxConcurrency int

	inflight singleflight.Group
}

// NewCashFlowService creates the service with all dependencies injected.
// cache may be nil, in which case every call builds a fresh chart.
func NewCashFlowService(
	builder port.ChartBuilder,
	clock port.Clock,
	cache port.Cache[*domain.ChartConfig],
	metrics *observability.Metrics,
	logger *zap.Logger,
	maxConcurrency int,
) *CashFlowService {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &CashFlowService{
		builder:        builder,
		clock:          clock,
		cache:          cache,
		metrics:        metrics,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// reference returns the instant a query is evaluated at.
func (s *CashFlowService) reference(at *time.Time) time.Time {
	if at != nil {
		return *at
	}
	return s.clock.Now()
}

// GetChart returns the chart for q. Charts are cached per period and
// reference day; the returned value is shared and must not be modified.
func (s *CashFlowService) GetChart(ctx context.Context, q ChartQuery) (*domain.ChartConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.builder == nil {
		return nil, &domain.ErrUnavailable{Component: "chart builder"}
	}

	ctx, span := tracer.Start(ctx, "CashFlowService.GetChart")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("get_chart", time.Since(start))
	}()

	period := chart.Resolve(q.Period)
	now := s.reference(q.At)
	key := fmt.Sprintf("chart:%s:%s", period, dateutil.ToISODate(now))
	span.SetAttributes(
		attribute.String("chart.period", string(period)),
		attribute.String("chart.cache_key", key),
	)

	if s.cache != nil && q.Refresh {
		s.cache.Delete(key)
		span.SetAttributes(attribute.Bool("chart.refresh", true))
	}
	if s.cache != nil {
		if cfg, ok := s.cache.Get(key); ok {
			s.metrics.IncrCacheHit(chartCacheName)
			return cfg, nil
		}
		s.metrics.IncrCacheMiss(chartCacheName)
		s.logger.Debug("chart cache miss", zap.String("key", key))
	}

	v, err, shared := s.inflight.Do(key, func() (any, error) {
		cfg := s.builder.CreateAt(period, now)
		if cfg == nil {
			return nil, &domain.ErrUnavailable{Component: "chart builder"}
		}
		s.metrics.IncrChartBuilt(cfg.Period, cfg.Grouping)
		s.metrics.ObservePoints(cfg.Grouping, len(cfg.DataPoints))
		if s.cache != nil {
			s.cache.Set(key, cfg)
		}
		return cfg, nil
	})
	if err != nil {
		s.logger.Error("chart build failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("build chart %s: %w", period, err)
	}
	span.SetAttributes(attribute.Bool("chart.shared", shared))
	return v.(*domain.ChartConfig), nil
}

// GetChartResponse returns the chart for q rendered for the dashboard.
func (s *CashFlowService) GetChartResponse(ctx context.Context, q ChartQuery) (*domain.ChartResponse, error) {
	ctx, span := tracer.Start(ctx, "CashFlowService.GetChartResponse")
	defer span.End()

	currency, err := chart.ValidateCurrency(q.Currency)
	if err != nil {
		return nil, err
	}
	cfg, err := s.GetChart(ctx, q)
	if err != nil {
		return nil, err
	}

	opts := chart.DefaultFormattingOptions()
	opts.Locale = q.Locale
	opts.Currency = currency
	f := chart.NewDateFormatter(opts)
	info := f.PeriodInfo(cfg.Period, cfg.Grouping)
	now := s.reference(q.At)

	points := make([]domain.ChartPointView, 0, len(cfg.DataPoints))
	for _, p := range cfg.DataPoints {
		points = append(points, domain.ChartPointView{
			Date:              dateutil.ToISODate(p.Date),
			Label:             f.AxisLabel(p.Date, cfg.Grouping),
			Tooltip:           f.TooltipLabel(p.Date, cfg.Grouping),
			Revenue:           p.Revenue,
			Expenses:          p.Expenses,
			RevenueFormatted:  f.FormatValue(p.Revenue),
			ExpensesFormatted: f.FormatValue(p.Expenses),
			Current:           isCurrentBucket(p.Date, cfg.Grouping, now),
		})
	}

	return &domain.ChartResponse{
		ID:            uuid.NewString(),
		Period:        cfg.Period,
		PeriodLabel:   info.Label,
		Grouping:      cfg.Grouping,
		GroupingLabel: info.ShortLabel,
		Grouped:       chart.RequiresGrouping(cfg.Period),
		Locale:        f.Locale(),
		Currency:      f.Currency(),
		DateRange: domain.DateRangeView{
			Start: dateutil.ToISODate(cfg.DateRange.Start),
			End:   dateutil.ToISODate(cfg.DateRange.End),
		},
		GeneratedAt: s.clock.Now(),
		Points:      points,
	}, nil
}

func isCurrentBucket(anchor time.Time, g domain.DataGrouping, now time.Time) bool {
	if g == domain.GroupingDaily {
		return dateutil.IsSameDay(anchor, now.In(anchor.Location()))
	}
	return chart.BucketRange(anchor, g).Contains(now)
}

// GetSummary returns the dashboard card figures for q.
func (s *CashFlowService) GetSummary(ctx context.Context, q ChartQuery) (*domain.CashFlowSummary, error) {
	ctx, span := tracer.Start(ctx, "CashFlowService.GetSummary")
	defer span.End()

	cfg, err := s.GetChart(ctx, q)
	if err != nil {
		return nil, err
	}
	summary := chart.Summarize(cfg)
	return &summary, nil
}

// GetOverview summarizes every period at the same reference instant.
// Charts are built concurrently, at most maxConcurrency at a time, and the
// summaries keep the selector order.
func (s *CashFlowService) GetOverview(ctx context.Context, at *time.Time) (*domain.OverviewResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "CashFlowService.GetOverview")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("get_overview", time.Since(start))
	}()

	now := s.reference(at)
	options := chart.PeriodOptions()
	summaries := make([]domain.CashFlowSummary, len(options))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, opt := range options {
		g.Go(func() error {
			cfg, err := s.GetChart(gCtx, ChartQuery{Period: opt.Value, At: &now})
			if err != nil {
				return err
			}
			summaries[i] = chart.Summarize(cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("overview failed", zap.Error(err))
		return nil, fmt.Errorf("overview: %w", err)
	}

	return &domain.OverviewResponse{
		Date:      dateutil.ToISODate(now),
		Summaries: summaries,
	}, nil
}

// ListPeriods returns the selector contents with the device default.
func (s *CashFlowService) ListPeriods(mobile bool) *domain.PeriodsResponse {
	return &domain.PeriodsResponse{
		Default:  chart.DefaultPeriod(mobile),
		Sections: chart.PeriodSections(),
	}
}
