package dateutil

import (
	"iter"
	"slices"
	"time"
)

// Group is a bucket of dates sharing a week or month key.
type Group struct {
	Key   string
	Start time.Time
	Dates []time.Time
}

// Range yields one value per calendar day, from start's day through end's
// day (read in start's location), each at start's wall-clock time. Days are
// stepped by calendar date, so a DST change never repeats or skips one.
// The sequence is empty when start is after end and can be ranged over
// any number of times.
func Range(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if start.After(end) {
			return
		}
		last := civilDay(end.In(start.Location()))
		for i := 0; ; i++ {
			d := AddDays(start, i)
			if civilDay(d).After(last) || !yield(d) {
				return
			}
		}
	}
}

// Days collects Range(start, end).
func Days(start, end time.Time) []time.Time {
	return slices.Collect(Range(start, end))
}

// GroupByWeek partitions dates by the Sunday that starts their week.
// Groups appear in the order their first date was seen.
func GroupByWeek(dates iter.Seq[time.Time]) []Group {
	return groupBy(dates, func(d time.Time) (string, time.Time) {
		start := StartOfWeek(d)
		return ToISODate(start), start
	})
}

// GroupByMonth partitions dates by year and month (key YYYY-MM).
func GroupByMonth(dates iter.Seq[time.Time]) []Group {
	return groupBy(dates, func(d time.Time) (string, time.Time) {
		return d.Format("2006-01"), StartOfMonth(d)
	})
}

func groupBy(dates iter.Seq[time.Time], keyOf func(time.Time) (string, time.Time)) []Group {
	var groups []Group
	index := make(map[string]int)

	for d := range dates {
		key, start := keyOf(d)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Start: start})
		}
		groups[i].Dates = append(groups[i].Dates, d)
	}
	return groups
}
