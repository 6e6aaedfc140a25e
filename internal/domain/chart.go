package domain

import (
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/dateutil"
)

// ============================================================
// Cash Flow Chart
// ============================================================

// TimePeriod is one of the fixed windows offered by the period selector.
type TimePeriod string

const (
	PeriodToday      TimePeriod = "today"
	PeriodYesterday  TimePeriod = "yesterday"
	PeriodLast7Days  TimePeriod = "last_7_days"
	PeriodLast15Days TimePeriod = "last_15_days"
	PeriodLast30Days TimePeriod = "last_30_days"
	PeriodThisWeek   TimePeriod = "this_week"
	PeriodLastWeek   TimePeriod = "last_week"
	PeriodThisMonth  TimePeriod = "this_month"
	PeriodLastMonth  TimePeriod = "last_month"
	PeriodLast90Days TimePeriod = "last_90_days"
	PeriodLastYear   TimePeriod = "last_year"
)

// AllPeriods returns every period in selector order.
func AllPeriods() []TimePeriod {
	return []TimePeriod{
		PeriodToday,
		PeriodYesterday,
		PeriodLast7Days,
		PeriodLast15Days,
		PeriodLast30Days,
		PeriodThisWeek,
		PeriodLastWeek,
		PeriodThisMonth,
		PeriodLastMonth,
		PeriodLast90Days,
		PeriodLastYear,
	}
}

// Valid reports whether p is one of the known periods.
func (p TimePeriod) Valid() bool {
	for _, known := range AllPeriods() {
		if p == known {
			return true
		}
	}
	return false
}

// DataGrouping is the bucket size used to aggregate daily values.
type DataGrouping string

const (
	GroupingDaily   DataGrouping = "daily"
	GroupingWeekly  DataGrouping = "weekly"
	GroupingMonthly DataGrouping = "monthly"
)

// Valid reports whether g is daily, weekly or monthly.
func (g DataGrouping) Valid() bool {
	switch g {
	case GroupingDaily, GroupingWeekly, GroupingMonthly:
		return true
	}
	return false
}

// DateRange is an inclusive [Start, End] interval. Start is never after End.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return dateutil.IsInRange(t, r.Start, r.End)
}

// Days counts the calendar days touched by the range, both ends included.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	sy, sm, sd := r.Start.Date()
	ey, em, ed := r.End.In(r.Start.Location()).Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// PeriodConfig is the static policy attached to a TimePeriod.
type PeriodConfig struct {
	Label       string       `json:"label"`
	Grouping    DataGrouping `json:"grouping"`
	DefaultDays int          `json:"defaultDays"`
}

// PeriodOption is one entry of the period selector.
type PeriodOption struct {
	Value       TimePeriod   `json:"value"`
	Label       string       `json:"label"`
	Grouping    DataGrouping `json:"grouping"`
	DefaultDays int          `json:"defaultDays"`
	Section     string       `json:"section"` // daily, weekly, monthly, yearly
}

// PeriodSection groups selector options under a separator.
type PeriodSection struct {
	Name    string         `json:"name"`
	Options []PeriodOption `json:"options"`
}

// ChartDataPoint is one bucket of the cash flow chart. Date is the bucket
// anchor: the day itself, the week start (Sunday) or the first of the month.
type ChartDataPoint struct {
	Date     time.Time `json:"date"`
	Revenue  float64   `json:"revenue"`
	Expenses float64   `json:"expenses"`
}

// ChartConfig is a freshly computed chart for one period. DataPoints are
// sorted ascending by Date with no duplicate anchors.
type ChartConfig struct {
	Period     TimePeriod       `json:"period"`
	Grouping   DataGrouping     `json:"grouping"`
	DataPoints []ChartDataPoint `json:"dataPoints"`
	DateRange  DateRange        `json:"dateRange"`
}

// PeriodInfo is the display information for a period and its grouping.
type PeriodInfo struct {
	Label      string       `json:"label"`
	ShortLabel string       `json:"shortLabel"`
	Grouping   DataGrouping `json:"grouping"`
}
