package chart

import (
	"math"
	"slices"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/dateutil"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
	"github.com/boddenberg/fluxo-caixa-go/internal/port"
)

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in c.Location (local time when nil).
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// ClockFunc adapts a function to port.Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

var _ port.ChartBuilder = (*Factory)(nil)

// Factory builds chart configs for a selected period.
type Factory struct {
	clock port.Clock
	gen   *Generator
}

// NewFactory creates a factory with an injected clock and value generator.
func NewFactory(clock port.Clock, gen *Generator) *Factory {
	return &Factory{clock: clock, gen: gen}
}

// Create builds the chart for p using the factory clock as "now".
func (f *Factory) Create(p domain.TimePeriod) *domain.ChartConfig {
	return f.CreateAt(p, f.clock.Now())
}

// CreateAt builds the chart for p relative to now. Unknown periods produce
// the FallbackPeriod chart.
func (f *Factory) CreateAt(p domain.TimePeriod, now time.Time) *domain.ChartConfig {
	p = Resolve(p)
	cfg := periodConfigs[p]
	dateRange := DateRangeFor(p, now)

	return &domain.ChartConfig{
		Period:     p,
		Grouping:   cfg.Grouping,
		DataPoints: f.dataPoints(dateRange, cfg.Grouping),
		DateRange:  dateRange,
	}
}

// DateRangeFor resolves the calendar window of p relative to now.
// Trailing windows end at today 00:00; this_week and this_month end at the
// end of the current week or month.
func DateRangeFor(p domain.TimePeriod, now time.Time) domain.DateRange {
	today := dateutil.StartOfDay(now)
	daysBack := func(n int) time.Time { return dateutil.StartOfDay(dateutil.SubtractDays(today, n)) }

	switch p {
	case domain.PeriodToday:
		return domain.DateRange{Start: today, End: dateutil.EndOfDay(today)}

	case domain.PeriodYesterday:
		yesterday := daysBack(1)
		return domain.DateRange{Start: yesterday, End: dateutil.EndOfDay(yesterday)}

	case domain.PeriodLast7Days:
		return domain.DateRange{Start: daysBack(6), End: today}

	case domain.PeriodLast15Days:
		return domain.DateRange{Start: daysBack(14), End: today}

	case domain.PeriodThisWeek:
		return domain.DateRange{Start: dateutil.StartOfWeek(today), End: dateutil.EndOfWeek(today)}

	case domain.PeriodLastWeek:
		return domain.DateRange{
			Start: dateutil.StartOfDay(dateutil.SubtractDays(dateutil.StartOfWeek(today), 7)),
			End:   dateutil.SubtractDays(dateutil.EndOfWeek(today), 7),
		}

	case domain.PeriodThisMonth:
		return domain.DateRange{Start: dateutil.StartOfMonth(today), End: dateutil.EndOfMonth(today)}

	case domain.PeriodLastMonth:
		lastMonth := dateutil.SubtractMonths(today, 1)
		return domain.DateRange{Start: dateutil.StartOfMonth(lastMonth), End: dateutil.EndOfMonth(lastMonth)}

	case domain.PeriodLast90Days:
		return domain.DateRange{Start: daysBack(89), End: today}

	case domain.PeriodLastYear:
		return domain.DateRange{Start: dateutil.StartOfDay(dateutil.SubtractMonths(today, 12)), End: today}

	default:
		return domain.DateRange{Start: daysBack(29), End: today}
	}
}

// BucketRange is the calendar span a point anchored at d covers.
func BucketRange(d time.Time, g domain.DataGrouping) domain.DateRange {
	switch g {
	case domain.GroupingWeekly:
		return domain.DateRange{Start: dateutil.StartOfWeek(d), End: dateutil.EndOfWeek(d)}
	case domain.GroupingMonthly:
		return domain.DateRange{Start: dateutil.StartOfMonth(d), End: dateutil.EndOfMonth(d)}
	}
	return domain.DateRange{Start: dateutil.StartOfDay(d), End: dateutil.EndOfDay(d)}
}

func (f *Factory) dataPoints(r domain.DateRange, g domain.DataGrouping) []domain.ChartDataPoint {
	days := dateutil.Range(r.Start, r.End)

	switch g {
	case domain.GroupingWeekly:
		return f.aggregate(dateutil.GroupByWeek(days))
	case domain.GroupingMonthly:
		return f.aggregate(dateutil.GroupByMonth(days))
	}

	var points []domain.ChartDataPoint
	for d := range days {
		points = append(points, domain.ChartDataPoint{
			Date:     d,
			Revenue:  f.gen.Revenue(d),
			Expenses: f.gen.Expenses(d),
		})
	}
	return points
}

// aggregate anchors one point per group at the group start with the rounded
// mean of the daily values.
func (f *Factory) aggregate(groups []dateutil.Group) []domain.ChartDataPoint {
	points := make([]domain.ChartDataPoint, 0, len(groups))
	for _, g := range groups {
		var revenue, expenses float64
		for _, d := range g.Dates {
			revenue += f.gen.Revenue(d)
			expenses += f.gen.Expenses(d)
		}
		n := float64(len(g.Dates))
		points = append(points, domain.ChartDataPoint{
			Date:     g.Start,
			Revenue:  math.Round(revenue / n),
			Expenses: math.Round(expenses / n),
		})
	}

	slices.SortFunc(points, func(a, b domain.ChartDataPoint) int {
		return a.Date.Compare(b.Date)
	})
	return points
}
