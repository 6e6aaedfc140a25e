package dateutil_test

import (
	"slices"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/boddenberg/fluxo-caixa-go/internal/dateutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, brt)
}

func TestStartAndEndOfDay(t *testing.T) {
	in := time.Date(2024, time.March, 15, 14, 32, 10, 123, brt)

	assert.Equal(t, date(2024, time.March, 15), dateutil.StartOfDay(in))
	assert.Equal(t, time.Date(2024, time.March, 15, 23, 59, 59, 999_000_000, brt), dateutil.EndOfDay(in))
	assert.Equal(t, brt, dateutil.StartOfDay(in).Location())
}

func TestWeekBoundaries(t *testing.T) {
	friday := time.Date(2024, time.March, 15, 9, 0, 0, 0, brt)

	start := dateutil.StartOfWeek(friday)
	end := dateutil.EndOfWeek(friday)

	assert.Equal(t, date(2024, time.March, 10), start)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Saturday, end.Weekday())
	assert.Equal(t, 16, end.Day())
}

func TestWeekBoundaries_AcrossYearEnd(t *testing.T) {
	d := date(2025, time.January, 1) // Wednesday

	assert.Equal(t, date(2024, time.December, 29), dateutil.StartOfWeek(d))
	assert.Equal(t, 4, dateutil.EndOfWeek(d).Day())
}

func TestWeekBoundaries_ContainAndSpanSevenDays(t *testing.T) {
	for d := range dateutil.Range(date(2023, time.December, 20), date(2024, time.March, 20)) {
		start, end := dateutil.StartOfWeek(d), dateutil.EndOfWeek(d)
		require.True(t, dateutil.IsInRange(d, start, end), "date %s", d)
		require.Len(t, dateutil.Days(start, end), 7, "date %s", d)
	}
}

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		in      time.Time
		lastDay int
	}{
		{"leap february", date(2024, time.February, 10), 29},
		{"common february", date(2023, time.February, 10), 28},
		{"thirty days", date(2024, time.April, 30), 30},
		{"december", date(2024, time.December, 31), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := dateutil.StartOfMonth(tt.in)
			end := dateutil.EndOfMonth(tt.in)

			assert.Equal(t, 1, start.Day())
			assert.Equal(t, tt.in.Month(), start.Month())
			assert.Equal(t, tt.lastDay, end.Day())
			assert.Equal(t, tt.in.Month(), end.Month())
			assert.Equal(t, 23, end.Hour())
		})
	}
}

func TestAddDays_RollsOverMonthAndYear(t *testing.T) {
	assert.Equal(t, date(2024, time.March, 1), dateutil.AddDays(date(2024, time.February, 28), 2))
	assert.Equal(t, date(2025, time.January, 4), dateutil.AddDays(date(2024, time.December, 30), 5))
	assert.Equal(t, date(2024, time.February, 29), dateutil.SubtractDays(date(2024, time.March, 1), 1))
}

func TestAddMonths_ClampsToLastDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"jan 31 plus one in leap year", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 plus one in common year", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"mar 31 minus one", date(2024, time.March, 31), -1, date(2024, time.February, 29)},
		{"may 31 minus one", date(2024, time.May, 31), -1, date(2024, time.April, 30)},
		{"december rolls year", date(2023, time.December, 15), 1, date(2024, time.January, 15)},
		{"january back a year", date(2024, time.January, 10), -1, date(2023, time.December, 10)},
		{"minus twelve", date(2024, time.February, 29), -12, date(2023, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateutil.AddMonths(tt.in, tt.n))
		})
	}
}

func TestSubtractMonths_InvertsAddMonths(t *testing.T) {
	for d := range dateutil.Range(date(2024, time.January, 1), date(2024, time.December, 31)) {
		if d.Day() > 28 {
			continue
		}
		for n := 1; n <= 14; n++ {
			require.Equal(t, d, dateutil.SubtractMonths(dateutil.AddMonths(d, n), n), "date %s n=%d", d, n)
		}
	}
}

func TestAddMonths_KeepsTimeOfDay(t *testing.T) {
	in := time.Date(2024, time.January, 31, 18, 45, 0, 0, brt)
	got := dateutil.AddMonths(in, 1)

	assert.Equal(t, 18, got.Hour())
	assert.Equal(t, 45, got.Minute())
}

func TestWeekNumber(t *testing.T) {
	assert.Equal(t, 11, dateutil.WeekNumber(date(2024, time.March, 15)))
	assert.Equal(t, 53, dateutil.WeekNumber(date(2021, time.January, 1)))
	assert.Equal(t, 1, dateutil.WeekNumber(date(2024, time.December, 31)))
	assert.Equal(t, 52, dateutil.WeekNumber(date(2023, time.January, 1)))
}

func TestWeekNumber_MatchesISOWeek(t *testing.T) {
	for d := range dateutil.Range(date(2015, time.January, 1), date(2030, time.December, 31)) {
		_, want := d.ISOWeek()
		require.Equal(t, want, dateutil.WeekNumber(d), "date %s", d)
	}
}

func TestRange(t *testing.T) {
	days := dateutil.Days(date(2024, time.February, 27), date(2024, time.March, 2))

	require.Len(t, days, 5)
	assert.Equal(t, date(2024, time.February, 29), days[2])
	assert.Equal(t, date(2024, time.March, 2), days[4])
}

func TestRange_IncludesEndOfDayBound(t *testing.T) {
	start := date(2024, time.March, 15)
	days := dateutil.Days(start, dateutil.EndOfDay(start))

	assert.Equal(t, []time.Time{start}, days)
}

func TestRange_EmptyWhenReversed(t *testing.T) {
	assert.Empty(t, dateutil.Days(date(2024, time.March, 2), date(2024, time.March, 1)))
}

func TestRange_Restartable(t *testing.T) {
	seq := dateutil.Range(date(2024, time.March, 1), date(2024, time.March, 3))

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestRange_StopsEarly(t *testing.T) {
	count := 0
	for range dateutil.Range(date(2024, time.January, 1), date(2024, time.December, 31)) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestGroupByWeek_PartitionsEveryDate(t *testing.T) {
	start, end := date(2024, time.February, 1), date(2024, time.March, 31)
	groups := dateutil.GroupByWeek(dateutil.Range(start, end))

	var flattened []time.Time
	for i, g := range groups {
		assert.Equal(t, time.Sunday, g.Start.Weekday())
		assert.Equal(t, dateutil.ToISODate(g.Start), g.Key)
		for _, d := range g.Dates {
			assert.Equal(t, g.Start, dateutil.StartOfWeek(d))
		}
		if i > 0 {
			assert.True(t, groups[i-1].Start.Before(g.Start))
		}
		flattened = append(flattened, g.Dates...)
	}
	assert.Equal(t, dateutil.Days(start, end), flattened)
}

func TestGroupByWeek_PreservesInputOrder(t *testing.T) {
	dates := []time.Time{
		date(2024, time.March, 14),
		date(2024, time.March, 10),
		date(2024, time.March, 20),
		date(2024, time.March, 12),
	}
	groups := dateutil.GroupByWeek(slices.Values(dates))

	require.Len(t, groups, 2)
	assert.Equal(t, "2024-03-10", groups[0].Key)
	assert.Equal(t, []time.Time{dates[0], dates[1], dates[3]}, groups[0].Dates)
	assert.Equal(t, "2024-03-17", groups[1].Key)
}

func TestGroupByMonth(t *testing.T) {
	groups := dateutil.GroupByMonth(dateutil.Range(date(2023, time.December, 30), date(2024, time.February, 2)))

	require.Len(t, groups, 3)
	assert.Equal(t, "2023-12", groups[0].Key)
	assert.Len(t, groups[0].Dates, 2)
	assert.Equal(t, "2024-01", groups[1].Key)
	assert.Len(t, groups[1].Dates, 31)
	assert.Equal(t, date(2024, time.January, 1), groups[1].Start)
	assert.Equal(t, "2024-02", groups[2].Key)
	assert.Len(t, groups[2].Dates, 2)
}

func TestDayHelpers(t *testing.T) {
	morning := time.Date(2024, time.March, 15, 8, 0, 0, 0, brt)
	night := time.Date(2024, time.March, 15, 22, 0, 0, 0, brt)

	assert.True(t, dateutil.IsSameDay(morning, night))
	assert.False(t, dateutil.IsSameDay(morning, dateutil.AddDays(night, 1)))
	assert.True(t, dateutil.IsInRange(night, morning, dateutil.EndOfDay(morning)))
	assert.False(t, dateutil.IsInRange(dateutil.AddDays(night, 1), morning, dateutil.EndOfDay(morning)))
}

func TestISODate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 23, 30, 0, 0, brt)
	assert.Equal(t, "2024-03-05", dateutil.ToISODate(d))

	parsed, err := dateutil.FromISODate("2024-03-05", brt)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 5), parsed)

	_, err = dateutil.FromISODate("05/03/2024", brt)
	assert.Error(t, err)
}

// Both zones spring forward at 00:00, so midnight does not exist on the
// transition day: Santiago on 2024-09-08, São Paulo on 2018-11-04.
func loadZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func isoKeys(days []time.Time) []string {
	keys := make([]string, 0, len(days))
	for _, d := range days {
		keys = append(keys, dateutil.ToISODate(d))
	}
	return keys
}

func TestStartOfDay_MidnightGap(t *testing.T) {
	tests := []struct {
		zone string
		in   [3]int
	}{
		{"America/Santiago", [3]int{2024, 9, 8}},
		{"America/Sao_Paulo", [3]int{2018, 11, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc := loadZone(t, tt.zone)
			noon := time.Date(tt.in[0], time.Month(tt.in[1]), tt.in[2], 12, 0, 0, 0, loc)

			got := dateutil.StartOfDay(noon)
			want := time.Date(tt.in[0], time.Month(tt.in[1]), tt.in[2], 1, 0, 0, 0, loc)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.True(t, dateutil.IsSameDay(noon, got))
			assert.Equal(t, dateutil.ToISODate(noon), dateutil.ToISODate(got))
		})
	}
}

func TestStartOfWeek_MidnightGap(t *testing.T) {
	scl := loadZone(t, "America/Santiago")

	week := dateutil.StartOfWeek(time.Date(2024, time.September, 11, 9, 0, 0, 0, scl))
	assert.Equal(t, "2024-09-08", dateutil.ToISODate(week))
	assert.Equal(t, time.Sunday, week.Weekday())
	assert.Equal(t, 1, week.Hour())

	month := dateutil.StartOfMonth(time.Date(2024, time.September, 20, 9, 0, 0, 0, scl))
	assert.Equal(t, time.Date(2024, time.September, 1, 0, 0, 0, 0, scl), month)
}

func TestAddDays_AcrossMidnightGap(t *testing.T) {
	scl := loadZone(t, "America/Santiago")
	midnight := time.Date(2024, time.September, 7, 0, 0, 0, 0, scl)

	assert.Equal(t, "2024-09-08", dateutil.ToISODate(dateutil.AddDays(midnight, 1)))
	assert.Equal(t, 1, dateutil.AddDays(midnight, 1).Hour())
	assert.Equal(t, time.Date(2024, time.September, 9, 0, 0, 0, 0, scl), dateutil.AddDays(midnight, 2))
	assert.Equal(t, "2024-09-07", dateutil.ToISODate(dateutil.SubtractDays(dateutil.StartOfDay(time.Date(2024, time.September, 8, 5, 0, 0, 0, scl)), 1)))

	noon := time.Date(2024, time.September, 7, 12, 0, 0, 0, scl)
	assert.Equal(t, 12, dateutil.AddDays(noon, 1).Hour())
}

func TestRange_DSTZones(t *testing.T) {
	tests := []struct {
		zone       string
		start, end [3]int
		want       []string
	}{
		{
			zone:  "America/Santiago",
			start: [3]int{2024, 9, 6}, end: [3]int{2024, 9, 12},
			want: []string{"2024-09-06", "2024-09-07", "2024-09-08", "2024-09-09", "2024-09-10", "2024-09-11", "2024-09-12"},
		},
		{
			zone:  "America/Sao_Paulo",
			start: [3]int{2018, 11, 4}, end: [3]int{2018, 11, 10},
			want: []string{"2018-11-04", "2018-11-05", "2018-11-06", "2018-11-07", "2018-11-08", "2018-11-09", "2018-11-10"},
		},
		{
			// fall back: 2024-04-06 has 25 hours in Santiago
			zone:  "America/Santiago",
			start: [3]int{2024, 4, 5}, end: [3]int{2024, 4, 8},
			want: []string{"2024-04-05", "2024-04-06", "2024-04-07", "2024-04-08"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.zone+" "+tt.want[0], func(t *testing.T) {
			loc := loadZone(t, tt.zone)
			start := dateutil.StartOfDay(time.Date(tt.start[0], time.Month(tt.start[1]), tt.start[2], 12, 0, 0, 0, loc))
			end := dateutil.StartOfDay(time.Date(tt.end[0], time.Month(tt.end[1]), tt.end[2], 12, 0, 0, 0, loc))

			days := dateutil.Days(start, end)
			assert.Equal(t, tt.want, isoKeys(days))
			for _, d := range days {
				assert.True(t, d.Equal(dateutil.StartOfDay(d)), "day %s is not a day start", d)
			}
		})
	}
}

func TestFromISODate_MidnightGap(t *testing.T) {
	scl := loadZone(t, "America/Santiago")

	got, err := dateutil.FromISODate("2024-09-08", scl)
	require.NoError(t, err)
	assert.Equal(t, "2024-09-08", dateutil.ToISODate(got))
	assert.Equal(t, 1, got.Hour())
}
