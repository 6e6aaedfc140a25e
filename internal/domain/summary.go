package domain

import "time"

// ============================================================
// Summary cards & API responses
// ============================================================

// CashFlowSummary aggregates the buckets of one chart, as shown on the
// dashboard cards.
type CashFlowSummary struct {
	Period         TimePeriod   `json:"period"`
	Label          string       `json:"label,omitempty"`
	Grouping       DataGrouping `json:"grouping"`
	From           string       `json:"from"` // YYYY-MM-DD
	To             string       `json:"to"`
	Days           int          `json:"days"`
	Buckets        int          `json:"buckets"`
	TotalRevenue   float64      `json:"totalRevenue"`
	TotalExpenses  float64      `json:"totalExpenses"`
	NetCashflow    float64      `json:"netCashflow"`
	AvgRevenue     float64      `json:"avgRevenue"`
	AvgExpenses    float64      `json:"avgExpenses"`
	SavingsRatePct float64      `json:"savingsRatePct"`
	PeakRevenue    *PeakBucket  `json:"peakRevenue,omitempty"`
	PeakExpenses   *PeakBucket  `json:"peakExpenses,omitempty"`
}

// PeakBucket is the bucket holding the largest value of a series.
type PeakBucket struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ChartResponse is returned by GET /v1/cashflow/chart.
type ChartResponse struct {
	ID            string           `json:"id"`
	Period        TimePeriod       `json:"period"`
	PeriodLabel   string           `json:"periodLabel"`
	Grouping      DataGrouping     `json:"grouping"`
	GroupingLabel string           `json:"groupingLabel"`
	Grouped       bool             `json:"grouped"`
	Locale        string           `json:"locale"`
	Currency      string           `json:"currency"`
	DateRange     DateRangeView    `json:"dateRange"`
	GeneratedAt   time.Time        `json:"generatedAt"`
	Points        []ChartPointView `json:"points"`
}

// DateRangeView is a DateRange rendered as ISO days.
type DateRangeView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ChartPointView is a data point ready for the area chart.
type ChartPointView struct {
	Date              string  `json:"date"`
	Label             string  `json:"label"`
	Tooltip           string  `json:"tooltip"`
	Revenue           float64 `json:"revenue"`
	Expenses          float64 `json:"expenses"`
	RevenueFormatted  string  `json:"revenueFormatted"`
	ExpensesFormatted string  `json:"expensesFormatted"`
	Current           bool    `json:"current"` // bucket holds the reference instant
}

// PeriodsResponse is returned by GET /v1/cashflow/periods.
type PeriodsResponse struct {
	Default  TimePeriod      `json:"default"`
	Sections []PeriodSection `json:"sections"`
}

// OverviewResponse is returned by GET /v1/cashflow/overview.
type OverviewResponse struct {
	Date      string            `json:"date"`
	Locale    string            `json:"locale,omitempty"`
	Currency  string            `json:"currency,omitempty"`
	Summaries []CashFlowSummary `json:"summaries"`
}

// CurrencyFormat is returned by the formatting endpoints.
type CurrencyFormat struct {
	Formatted string  `json:"formatted"`
	Value     float64 `json:"value"`
	Locale    string  `json:"locale"`
	Currency  string  `json:"currency"`
}
