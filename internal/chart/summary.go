package chart

import (
	"github.com/shopspring/decimal"

	"github.com/boddenberg/fluxo-caixa-go/internal/dateutil"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
)

// Summarize aggregates the buckets of cfg for the dashboard cards.
// Totals are sums over buckets; for weekly and monthly charts each bucket
// already holds a daily mean.
func Summarize(cfg *domain.ChartConfig) domain.CashFlowSummary {
	s := domain.CashFlowSummary{
		Period:   cfg.Period,
		Grouping: cfg.Grouping,
		From:     dateutil.ToISODate(cfg.DateRange.Start),
		To:       dateutil.ToISODate(cfg.DateRange.End),
		Days:     cfg.DateRange.Days(),
		Buckets:  len(cfg.DataPoints),
	}
	if len(cfg.DataPoints) == 0 {
		return s
	}

	revenue, expenses := decimal.Zero, decimal.Zero
	var peakRev, peakExp domain.ChartDataPoint
	for i, p := range cfg.DataPoints {
		revenue = revenue.Add(decimal.NewFromFloat(p.Revenue))
		expenses = expenses.Add(decimal.NewFromFloat(p.Expenses))
		if i == 0 || p.Revenue > peakRev.Revenue {
			peakRev = p
		}
		if i == 0 || p.Expenses > peakExp.Expenses {
			peakExp = p
		}
	}

	n := decimal.NewFromInt(int64(len(cfg.DataPoints)))
	net := revenue.Sub(expenses)

	s.TotalRevenue = revenue.InexactFloat64()
	s.TotalExpenses = expenses.InexactFloat64()
	s.NetCashflow = net.InexactFloat64()
	s.AvgRevenue = revenue.DivRound(n, 2).InexactFloat64()
	s.AvgExpenses = expenses.DivRound(n, 2).InexactFloat64()
	if revenue.IsPositive() {
		s.SavingsRatePct = net.Mul(decimal.NewFromInt(100)).DivRound(revenue, 1).InexactFloat64()
	}
	s.PeakRevenue = &domain.PeakBucket{Date: dateutil.ToISODate(peakRev.Date), Value: peakRev.Revenue}
	s.PeakExpenses = &domain.PeakBucket{Date: dateutil.ToISODate(peakExp.Date), Value: peakExp.Expenses}
	return s
}
