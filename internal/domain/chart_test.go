package domain_test

import (
	"testing"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTimePeriod_Valid(t *testing.T) {
	for _, p := range domain.AllPeriods() {
		assert.True(t, p.Valid(), "period %s", p)
	}
	assert.Len(t, domain.AllPeriods(), 11)
	assert.False(t, domain.TimePeriod("ultimos_7_dias").Valid())
	assert.False(t, domain.TimePeriod("").Valid())
}

func TestDataGrouping_Valid(t *testing.T) {
	assert.True(t, domain.GroupingDaily.Valid())
	assert.True(t, domain.GroupingWeekly.Valid())
	assert.True(t, domain.GroupingMonthly.Valid())
	assert.False(t, domain.DataGrouping("yearly").Valid())
}

func TestDateRange(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	r := domain.DateRange{
		Start: time.Date(2024, time.February, 1, 0, 0, 0, 0, loc),
		End:   time.Date(2024, time.February, 29, 23, 59, 59, 999_000_000, loc),
	}

	assert.Equal(t, 29, r.Days())
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.True(t, r.Contains(time.Date(2024, time.February, 15, 12, 0, 0, 0, loc)))
	assert.False(t, r.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)))

	single := domain.DateRange{Start: r.Start, End: r.Start}
	assert.Equal(t, 1, single.Days())

	reversed := domain.DateRange{Start: r.End, End: r.Start}
	assert.Zero(t, reversed.Days())
}

func TestErrors(t *testing.T) {
	assert.Equal(t, "validation error on 'date': expected YYYY-MM-DD",
		(&domain.ErrValidation{Field: "date", Message: "expected YYYY-MM-DD"}).Error())
	assert.Equal(t, "route not found: /v1/nope", (&domain.ErrNotFound{Resource: "route", ID: "/v1/nope"}).Error())
	assert.Equal(t, "chart cache unavailable", (&domain.ErrUnavailable{Component: "chart cache"}).Error())
}
