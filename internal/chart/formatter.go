package chart

import (
	"fmt"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/dateutil"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
)

// FormattingOptions controls how dates and amounts are rendered.
type FormattingOptions struct {
	Locale          string
	Currency        string
	AbbreviateMonth bool
	ShowYear        bool
}

// DefaultFormattingOptions renders pt-BR dates with abbreviated months and
// BRL amounts.
func DefaultFormattingOptions() FormattingOptions {
	return FormattingOptions{
		Locale:          DefaultLocale,
		Currency:        DefaultCurrency,
		AbbreviateMonth: true,
		ShowYear:        true,
	}
}

// DateFormatter renders axis labels, tooltip labels and amounts.
type DateFormatter struct {
	opts FormattingOptions
	loc  *localeSpec
}

// NewDateFormatter creates a formatter. Unknown locales fall back to pt-BR
// and an empty currency to BRL.
func NewDateFormatter(opts FormattingOptions) *DateFormatter {
	loc := lookupLocale(opts.Locale)
	opts.Locale = loc.name
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	return &DateFormatter{opts: opts, loc: loc}
}

// Locale returns the resolved locale name.
func (f *DateFormatter) Locale() string { return f.opts.Locale }

// Currency returns the currency code used by FormatValue.
func (f *DateFormatter) Currency() string { return f.opts.Currency }

// AxisLabel returns the short X axis label of a bucket anchor.
func (f *DateFormatter) AxisLabel(d time.Time, g domain.DataGrouping) string {
	switch g {
	case domain.GroupingWeekly:
		return fmt.Sprintf(f.loc.weekAxis, dateutil.WeekNumber(d))
	case domain.GroupingMonthly:
		month := f.month(d, f.opts.AbbreviateMonth)
		if !f.opts.ShowYear {
			return month
		}
		return fmt.Sprintf(f.loc.monthYear, month, d.Year())
	default:
		return fmt.Sprintf(f.loc.dayMonth, d.Day(), f.month(d, f.opts.AbbreviateMonth))
	}
}

// TooltipLabel returns the long label shown when hovering a bucket.
func (f *DateFormatter) TooltipLabel(d time.Time, g domain.DataGrouping) string {
	switch g {
	case domain.GroupingWeekly:
		start := dateutil.StartOfWeek(d)
		end := dateutil.EndOfWeek(d)
		startStr := fmt.Sprintf(f.loc.dayMonth, start.Day(), f.month(start, true))
		endStr := fmt.Sprintf(f.loc.dayMonthYear, end.Day(), f.month(end, true), end.Year())
		return fmt.Sprintf(f.loc.weekTooltip, dateutil.WeekNumber(d), startStr, endStr)
	case domain.GroupingMonthly:
		return fmt.Sprintf(f.loc.monthYear, f.month(d, false), d.Year())
	default:
		return fmt.Sprintf(f.loc.dayMonthYear, d.Day(), f.month(d, false), d.Year())
	}
}

// FormatValue renders v as currency with two decimals.
func (f *DateFormatter) FormatValue(v float64) string {
	return formatMoneyFloat(v, 2, f.loc, f.opts.Currency)
}

// FormatTick renders v as currency without decimals, for the Y axis.
func (f *DateFormatter) FormatTick(v float64) string {
	return formatMoneyFloat(v, 0, f.loc, f.opts.Currency)
}

// PeriodInfo returns the localized label of p with the short name of g.
func (f *DateFormatter) PeriodInfo(p domain.TimePeriod, g domain.DataGrouping) domain.PeriodInfo {
	return domain.PeriodInfo{
		Label:      f.loc.periodLabel(Resolve(p)),
		ShortLabel: f.loc.groupingLabel(g),
		Grouping:   g,
	}
}

func (f *DateFormatter) month(d time.Time, short bool) string {
	if short {
		return f.loc.monthsShort[d.Month()-1]
	}
	return f.loc.monthsLong[d.Month()-1]
}
