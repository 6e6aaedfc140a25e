package chart_test

import (
	"testing"

	"github.com/boddenberg/fluxo-caixa-go/internal/chart"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodTable_CoversEveryPeriod(t *testing.T) {
	for _, p := range domain.AllPeriods() {
		cfg, ok := chart.Lookup(p)
		require.True(t, ok, "missing config for %s", p)
		assert.True(t, cfg.Grouping.Valid(), "grouping of %s", p)
		assert.NotEmpty(t, cfg.Label)
		assert.Positive(t, cfg.DefaultDays)
	}
}

func TestPeriodTable_GroupingPolicy(t *testing.T) {
	want := map[domain.TimePeriod]domain.DataGrouping{
		domain.PeriodToday:      domain.GroupingDaily,
		domain.PeriodYesterday:  domain.GroupingDaily,
		domain.PeriodLast7Days:  domain.GroupingDaily,
		domain.PeriodLast15Days: domain.GroupingDaily,
		domain.PeriodLast30Days: domain.GroupingWeekly,
		domain.PeriodThisWeek:   domain.GroupingWeekly,
		domain.PeriodLastWeek:   domain.GroupingWeekly,
		domain.PeriodThisMonth:  domain.GroupingWeekly,
		domain.PeriodLastMonth:  domain.GroupingWeekly,
		domain.PeriodLast90Days: domain.GroupingMonthly,
		domain.PeriodLastYear:   domain.GroupingMonthly,
	}
	for p, g := range want {
		assert.Equal(t, g, chart.Config(p).Grouping, "period %s", p)
		assert.Equal(t, g != domain.GroupingDaily, chart.RequiresGrouping(p), "period %s", p)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := chart.Lookup("next_week")
	assert.False(t, ok)
	assert.Equal(t, chart.Config(domain.PeriodLast30Days), chart.Config("next_week"))
	assert.Equal(t, "Últimos 30 dias", chart.PeriodLabel("next_week"))
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want domain.TimePeriod
	}{
		{"last_7_days", domain.PeriodLast7Days},
		{" LAST_YEAR ", domain.PeriodLastYear},
		{"hoje", domain.PeriodToday},
		{"ultimos_15_dias", domain.PeriodLast15Days},
		{"esta_semana", domain.PeriodThisWeek},
		{"essa_semana", domain.PeriodThisWeek},
		{"mes_passado", domain.PeriodLastMonth},
		{"ultimo_ano", domain.PeriodLastYear},
		{"", domain.PeriodLast30Days},
		{"sempre", domain.PeriodLast30Days},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, chart.ParsePeriod(tt.in), "input %q", tt.in)
	}
}

func TestConvertLegacyPeriod_Fallback(t *testing.T) {
	assert.Equal(t, domain.PeriodLast90Days, chart.ConvertLegacyPeriod("ultimos_90_dias"))
	assert.Equal(t, domain.PeriodLast30Days, chart.ConvertLegacyPeriod("last_7_days"))
}

func TestDefaultPeriod(t *testing.T) {
	assert.Equal(t, domain.PeriodLast7Days, chart.DefaultPeriod(true))
	assert.Equal(t, domain.PeriodLast30Days, chart.DefaultPeriod(false))
}

func TestPeriodSections(t *testing.T) {
	sections := chart.PeriodSections()
	require.Len(t, sections, 4)

	sizes := map[string]int{}
	for _, s := range sections {
		sizes[s.Name] = len(s.Options)
		for _, o := range s.Options {
			assert.Equal(t, s.Name, o.Section)
		}
	}
	assert.Equal(t, map[string]int{"daily": 5, "weekly": 2, "monthly": 2, "yearly": 2}, sizes)

	var values []domain.TimePeriod
	for _, o := range chart.PeriodOptions() {
		values = append(values, o.Value)
	}
	assert.Equal(t, domain.AllPeriods(), values)
}
