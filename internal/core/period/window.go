package period

import "time"

// endOfDayNanos is 23:59:59.999 expressed as nanoseconds into the second
const endOfDayNanos = 999_000_000

const secondsPerDay = 24 * 60 * 60

// DateRange is an inclusive window; Start <= End
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days is the inclusive count of calendar days touched by the range
// counted on civil dates so DST transitions never change it
func (r DateRange) Days() int { return span(dayOf(r.Start), dayOf(r.End)) }

// Contains reports whether t falls inside the range, bounds included
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Pair is a current window and the window it is compared against
type Pair struct {
	Current    DateRange `json:"current"`
	Comparison DateRange `json:"comparison"`
}

// day is a calendar date with no clock component
type day struct {
	y int
	m time.Month
	d int
}

func dayOf(t time.Time) day {
	y, m, d := t.Date()
	return day{y: y, m: m, d: d}
}

// utc pins the date to UTC midnight so arithmetic is free of offsets
func (d day) utc() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d day) addDays(n int) day { return dayOf(d.utc().AddDate(0, 0, n)) }

func (d day) weekday() time.Weekday { return d.utc().Weekday() }

// isoWeekday numbers Monday as 1 and Sunday as 7
func (d day) isoWeekday() int {
	wd := int(d.weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d day) start(loc *time.Location) time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, loc)
}

func (d day) end(loc *time.Location) time.Time {
	return time.Date(d.y, d.m, d.d, 23, 59, 59, endOfDayNanos, loc)
}

func (d day) firstOfMonth() day { return day{y: d.y, m: d.m, d: 1} }

// monthsBack returns the first day of the month k months before d
func (d day) monthsBack(k int) day {
	y, m := d.y, int(d.m)-k
	for m < 1 {
		m += 12
		y--
	}
	return day{y: y, m: time.Month(m), d: 1}
}

// span is the inclusive day count from a to b
// whole seconds keep ranges past time.Duration's ~292 years exact
func span(a, b day) int {
	return int((b.utc().Unix()-a.utc().Unix())/secondsPerDay) + 1
}

func daysInMonth(y int, m time.Month) int {
	// day zero of the following month is the last day of m
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clip returns (y, m, d) with d clamped to the last valid day of that month
func clip(y int, m time.Month, d int) day {
	if last := daysInMonth(y, m); d > last {
		d = last
	}
	return day{y: y, m: m, d: d}
}

// fullDays is the range covering whole days from a through b
func fullDays(a, b day, loc *time.Location) DateRange {
	return DateRange{Start: a.start(loc), End: b.end(loc)}
}

// preceding is the n whole days ending the day before first
func preceding(first day, n int, loc *time.Location) DateRange {
	return fullDays(first.addDays(-n), first.addDays(-1), loc)
}

func isStartOfDay(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

func isEndOfDay(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 23 && m == 59 && s == 59 && t.Nanosecond() == endOfDayNanos
}
