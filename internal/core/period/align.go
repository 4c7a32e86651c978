package period

import "time"

// Validate checks that p obeys the comparison rules of id
// it never mutates p and returns an ErrMisaligned wrapper on the first violation
func Validate(id Identifier, p Pair) error {
	cur, cmp := p.Current, p.Comparison

	if cur.Start.After(cur.End) {
		return misaligned(id, "current start %s after end %s", stamp(cur.Start), stamp(cur.End))
	}
	if cmp.Start.After(cmp.End) {
		return misaligned(id, "comparison start %s after end %s", stamp(cmp.Start), stamp(cmp.End))
	}
	if !cmp.End.Before(cur.Start) {
		return misaligned(id, "comparison end %s overlaps current start %s", stamp(cmp.End), stamp(cur.Start))
	}
	if !isStartOfDay(cur.Start) || !isStartOfDay(cmp.Start) {
		return misaligned(id, "windows must start at 00:00:00.000")
	}
	if !isEndOfDay(cmp.End) {
		return misaligned(id, "comparison must end at 23:59:59.999, got %s", stamp(cmp.End))
	}
	if !id.ToDate() && !isEndOfDay(cur.End) {
		return misaligned(id, "current must end at 23:59:59.999, got %s", stamp(cur.End))
	}

	switch id.Family() {
	case Rolling:
		return alignRolling(id, cur, cmp)
	case Calendar:
		return alignCalendar(id, cur, cmp)
	default:
		return misaligned(id, "unsupported period identifier")
	}
}

func alignRolling(id Identifier, cur, cmp DateRange) error {
	if cur.Days() != cmp.Days() {
		return misaligned(id, "rolling windows differ in length: current %d days, comparison %d days", cur.Days(), cmp.Days())
	}
	if dayOf(cmp.End).addDays(1) != dayOf(cur.Start) {
		return misaligned(id, "comparison must end the day before current starts")
	}
	return nil
}

func alignCalendar(id Identifier, cur, cmp DateRange) error {
	cs, ce := dayOf(cur.Start), dayOf(cur.End)
	ps, pe := dayOf(cmp.Start), dayOf(cmp.End)

	var wantStart, wantEnd day
	switch id {
	case Yesterday:
		if cs != ce {
			return misaligned(id, "current must be a single day")
		}
		wantStart, wantEnd = cs.addDays(-7), cs.addDays(-7)
	case WeekToDate:
		if cs.weekday() != time.Monday {
			return misaligned(id, "current must start on a Monday, got %s", cs.weekday())
		}
		wantStart, wantEnd = cs.addDays(-7), ce.addDays(-7)
	case MonthToDate:
		if cs.d != 1 {
			return misaligned(id, "current must start on the first of the month")
		}
		wantStart = cs.monthsBack(1)
		wantEnd = clip(wantStart.y, wantStart.m, ce.d)
	case YearToDate:
		if cs.m != time.January || cs.d != 1 {
			return misaligned(id, "current must start on January 1")
		}
		wantStart = day{y: cs.y - 1, m: time.January, d: 1}
		wantEnd = clip(cs.y-1, ce.m, ce.d)
	}

	if ps != wantStart || pe != wantEnd {
		return misaligned(id, "comparison %s..%s, want %s..%s", ps, pe, wantStart, wantEnd)
	}
	return nil
}

func (d day) String() string { return d.utc().Format(time.DateOnly) }

func stamp(t time.Time) string { return t.Format(time.RFC3339Nano) }
