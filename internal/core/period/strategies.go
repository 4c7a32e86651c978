package period

import "time"

// anchor is the single reference point every strategy computes against
// now is captured once so both windows agree on what today is
type anchor struct {
	now   time.Time
	today day
	loc   *time.Location
}

func newAnchor(now time.Time, loc *time.Location) anchor {
	n := now.In(loc)
	return anchor{now: n, today: dayOf(n), loc: loc}
}

// toNow is a partial window from the start of first through now
func (a anchor) toNow(first day) DateRange {
	return DateRange{Start: first.start(a.loc), End: a.now}
}

type strategy func(a anchor) Pair

var strategies = map[Identifier]strategy{
	Yesterday:         yesterday,
	WeekToDate:        weekToDate,
	Last7Days:         lastDays(7),
	MonthToDate:       monthToDate,
	Last30Days:        lastDays(30),
	ThreeMonthsToDate: monthsToDate(2),
	Last90Days:        lastDays(90),
	SixMonthsToDate:   monthsToDate(5),
	YearToDate:        yearToDate,
}

func yesterday(a anchor) Pair {
	y := a.today.addDays(-1)
	w := y.addDays(-7)
	return Pair{
		Current:    fullDays(y, y, a.loc),
		Comparison: fullDays(w, w, a.loc),
	}
}

func weekToDate(a anchor) Pair {
	monday := a.today.addDays(-(a.today.isoWeekday() - 1))
	return Pair{
		Current:    a.toNow(monday),
		Comparison: fullDays(monday.addDays(-7), a.today.addDays(-7), a.loc),
	}
}

func lastDays(n int) strategy {
	return func(a anchor) Pair {
		first := a.today.addDays(-n)
		return Pair{
			Current:    fullDays(first, a.today.addDays(-1), a.loc),
			Comparison: preceding(first, n, a.loc),
		}
	}
}

func monthToDate(a anchor) Pair {
	first := a.today.firstOfMonth()
	prev := first.monthsBack(1)
	return Pair{
		Current:    a.toNow(first),
		Comparison: fullDays(prev, clip(prev.y, prev.m, a.today.d), a.loc),
	}
}

// monthsToDate starts on the first of the month back months ago and compares
// against the same number of elapsed days immediately before it
func monthsToDate(back int) strategy {
	return func(a anchor) Pair {
		first := a.today.monthsBack(back)
		return Pair{
			Current:    a.toNow(first),
			Comparison: preceding(first, span(first, a.today), a.loc),
		}
	}
}

func yearToDate(a anchor) Pair {
	y := a.today.y
	return Pair{
		Current:    a.toNow(day{y: y, m: time.January, d: 1}),
		Comparison: fullDays(day{y: y - 1, m: time.January, d: 1}, clip(y-1, a.today.m, a.today.d), a.loc),
	}
}

func custom(bounds DateRange, loc *time.Location) Pair {
	first, last := dayOf(bounds.Start.In(loc)), dayOf(bounds.End.In(loc))
	return Pair{
		Current:    fullDays(first, last, loc),
		Comparison: preceding(first, span(first, last), loc),
	}
}
