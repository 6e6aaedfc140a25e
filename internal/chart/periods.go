// Package chart builds the cash flow chart: the period policy table, the
// date range and bucketing factory, mock value generation and the pt-BR /
// en-US formatters used by the dashboard.
package chart

import (
	"strings"

	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
)

// FallbackPeriod is used whenever a period is unknown.
const FallbackPeriod = domain.PeriodLast30Days

// Periods of up to 15 days are daily, 30-day and week/month scale periods
// are weekly, 90-day and yearly periods are monthly.
var periodConfigs = map[domain.TimePeriod]domain.PeriodConfig{
	domain.PeriodToday:      {Label: "Hoje", Grouping: domain.GroupingDaily, DefaultDays: 1},
	domain.PeriodYesterday:  {Label: "Ontem", Grouping: domain.GroupingDaily, DefaultDays: 1},
	domain.PeriodLast7Days:  {Label: "Últimos 7 dias", Grouping: domain.GroupingDaily, DefaultDays: 7},
	domain.PeriodLast15Days: {Label: "Últimos 15 dias", Grouping: domain.GroupingDaily, DefaultDays: 15},
	domain.PeriodLast30Days: {Label: "Últimos 30 dias", Grouping: domain.GroupingWeekly, DefaultDays: 30},
	domain.PeriodThisWeek:   {Label: "Esta semana", Grouping: domain.GroupingWeekly, DefaultDays: 7},
	domain.PeriodLastWeek:   {Label: "Semana passada", Grouping: domain.GroupingWeekly, DefaultDays: 7},
	domain.PeriodThisMonth:  {Label: "Este mês", Grouping: domain.GroupingWeekly, DefaultDays: 30},
	domain.PeriodLastMonth:  {Label: "Mês passado", Grouping: domain.GroupingWeekly, DefaultDays: 30},
	domain.PeriodLast90Days: {Label: "Últimos 90 dias", Grouping: domain.GroupingMonthly, DefaultDays: 90},
	domain.PeriodLastYear:   {Label: "Último ano", Grouping: domain.GroupingMonthly, DefaultDays: 365},
}

// Portuguese keys used by older dashboard builds.
var legacyPeriods = map[string]domain.TimePeriod{
	"hoje":            domain.PeriodToday,
	"ontem":           domain.PeriodYesterday,
	"ultimos_7_dias":  domain.PeriodLast7Days,
	"ultimos_15_dias": domain.PeriodLast15Days,
	"ultimos_30_dias": domain.PeriodLast30Days,
	"esta_semana":     domain.PeriodThisWeek,
	"essa_semana":     domain.PeriodThisWeek,
	"semana_passada":  domain.PeriodLastWeek,
	"este_mes":        domain.PeriodThisMonth,
	"mes_passado":     domain.PeriodLastMonth,
	"ultimos_90_dias": domain.PeriodLast90Days,
	"ultimo_ano":      domain.PeriodLastYear,
}

var periodSections = []struct {
	name    string
	periods []domain.TimePeriod
}{
	{"daily", []domain.TimePeriod{domain.PeriodToday, domain.PeriodYesterday, domain.PeriodLast7Days, domain.PeriodLast15Days, domain.PeriodLast30Days}},
	{"weekly", []domain.TimePeriod{domain.PeriodThisWeek, domain.PeriodLastWeek}},
	{"monthly", []domain.TimePeriod{domain.PeriodThisMonth, domain.PeriodLastMonth}},
	{"yearly", []domain.TimePeriod{domain.PeriodLast90Days, domain.PeriodLastYear}},
}

// Lookup returns the config of p and whether p is known.
func Lookup(p domain.TimePeriod) (domain.PeriodConfig, bool) {
	cfg, ok := periodConfigs[p]
	return cfg, ok
}

// Resolve returns p when it is known and FallbackPeriod otherwise.
func Resolve(p domain.TimePeriod) domain.TimePeriod {
	if _, ok := Lookup(p); ok {
		return p
	}
	return FallbackPeriod
}

// Config returns the config of p, falling back to FallbackPeriod.
func Config(p domain.TimePeriod) domain.PeriodConfig {
	return periodConfigs[Resolve(p)]
}

// ParsePeriod accepts canonical and legacy keys, case-insensitively.
// Unknown input resolves to FallbackPeriod.
func ParsePeriod(s string) domain.TimePeriod {
	key := strings.ToLower(strings.TrimSpace(s))
	if p := domain.TimePeriod(key); p.Valid() {
		return p
	}
	return ConvertLegacyPeriod(key)
}

// ConvertLegacyPeriod maps a Portuguese period key to its TimePeriod.
func ConvertLegacyPeriod(old string) domain.TimePeriod {
	if p, ok := legacyPeriods[old]; ok {
		return p
	}
	return FallbackPeriod
}

// DefaultPeriod is the period preselected on first render.
func DefaultPeriod(mobile bool) domain.TimePeriod {
	if mobile {
		return domain.PeriodLast7Days
	}
	return domain.PeriodLast30Days
}

// RequiresGrouping reports whether p aggregates days into buckets.
func RequiresGrouping(p domain.TimePeriod) bool {
	return Config(p).Grouping != domain.GroupingDaily
}

// PeriodLabel returns the pt-BR label of p.
func PeriodLabel(p domain.TimePeriod) string {
	return Config(p).Label
}

// PeriodOptions lists every period in selector order.
func PeriodOptions() []domain.PeriodOption {
	var opts []domain.PeriodOption
	for _, s := range PeriodSections() {
		opts = append(opts, s.Options...)
	}
	return opts
}

// PeriodSections lists the selector sections with their options.
func PeriodSections() []domain.PeriodSection {
	sections := make([]domain.PeriodSection, 0, len(periodSections))
	for _, s := range periodSections {
		section := domain.PeriodSection{Name: s.name}
		for _, p := range s.periods {
			cfg := periodConfigs[p]
			section.Options = append(section.Options, domain.PeriodOption{
				Value:       p,
				Label:       cfg.Label,
				Grouping:    cfg.Grouping,
				DefaultDays: cfg.DefaultDays,
				Section:     s.name,
			})
		}
		sections = append(sections, section)
	}
	return sections
}
