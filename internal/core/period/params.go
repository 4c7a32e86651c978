package period

import (
	"net/url"
	"strings"
	"time"

	perr "bizdash/internal/platform/errors"
)

// ISOLayout is the wire format for window bounds, always with an offset
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// Query parameter keys consumed by the analytics endpoints
const (
	KeyStartDate        = "start_date"
	KeyEndDate          = "end_date"
	KeyCompareStartDate = "compare_start_date"
	KeyCompareEndDate   = "compare_end_date"
)

// QueryParams is a Pair rendered as outbound query parameters
type QueryParams struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	CompareStartDate string `json:"compare_start_date"`
	CompareEndDate   string `json:"compare_end_date"`
}

// Params renders p in the location its bounds already carry
func (p Pair) Params() QueryParams {
	return QueryParams{
		StartDate:        p.Current.Start.Format(ISOLayout),
		EndDate:          p.Current.End.Format(ISOLayout),
		CompareStartDate: p.Comparison.Start.Format(ISOLayout),
		CompareEndDate:   p.Comparison.End.Format(ISOLayout),
	}
}

// ParamsIn renders p after moving every bound into loc
func (p Pair) ParamsIn(loc *time.Location) QueryParams {
	return Pair{
		Current:    DateRange{Start: p.Current.Start.In(loc), End: p.Current.End.In(loc)},
		Comparison: DateRange{Start: p.Comparison.Start.In(loc), End: p.Comparison.End.In(loc)},
	}.Params()
}

// Values returns the params as url.Values
func (q QueryParams) Values() url.Values {
	v := url.Values{}
	v.Set(KeyStartDate, q.StartDate)
	v.Set(KeyEndDate, q.EndDate)
	v.Set(KeyCompareStartDate, q.CompareStartDate)
	v.Set(KeyCompareEndDate, q.CompareEndDate)
	return v
}

// Encode returns the params as a query string
func (q QueryParams) Encode() string { return q.Values().Encode() }

// HasParams reports whether any of the four window keys is present
func HasParams(v url.Values) bool {
	for _, k := range []string{KeyStartDate, KeyEndDate, KeyCompareStartDate, KeyCompareEndDate} {
		if strings.TrimSpace(v.Get(k)) != "" {
			return true
		}
	}
	return false
}

// ParseParams reads the four window keys back into a Pair in loc
// bare dates expand to the start or end of that day
func ParseParams(v url.Values, loc *time.Location) (Pair, error) {
	if loc == nil {
		loc = time.UTC
	}
	var (
		p    Pair
		errs error
	)
	read := func(key string, endOfDay bool, dst *time.Time) {
		if errs != nil {
			return
		}
		t, err := ParseBound(v.Get(key), endOfDay, loc)
		if err != nil {
			errs = perr.WithField(err, key)
			return
		}
		*dst = t
	}
	read(KeyStartDate, false, &p.Current.Start)
	read(KeyEndDate, true, &p.Current.End)
	read(KeyCompareStartDate, false, &p.Comparison.Start)
	read(KeyCompareEndDate, true, &p.Comparison.End)
	if errs != nil {
		return Pair{}, errs
	}

	if p.Current.Start.After(p.Current.End) {
		return Pair{}, perr.WithField(invalidConfig("start_date is after end_date"), KeyStartDate)
	}
	if p.Comparison.Start.After(p.Comparison.End) {
		return Pair{}, perr.WithField(invalidConfig("compare_start_date is after compare_end_date"), KeyCompareStartDate)
	}
	if !p.Comparison.End.Before(p.Current.Start) {
		return Pair{}, perr.WithField(invalidConfig("comparison window overlaps current window"), KeyCompareEndDate)
	}
	return p, nil
}

// ParseBound parses one bound as ISO-8601 with offset, local date time, or bare date
func ParseBound(s string, endOfDay bool, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, perr.InvalidArgf("missing date")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		d := dayOf(t)
		if endOfDay {
			return d.end(loc), nil
		}
		return d.start(loc), nil
	}
	return time.Time{}, perr.InvalidArgf("invalid date %q, want ISO-8601", s)
}

// Field names ParseCustom reports on
const (
	KeyCustomStart = "custom_start"
	KeyCustomEnd   = "custom_end"
)

// ParseCustom reads CUSTOM bounds; both blank yields nil so the resolver can reject or ignore them
func ParseCustom(start, end string, loc *time.Location) (*DateRange, error) {
	if strings.TrimSpace(start) == "" && strings.TrimSpace(end) == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	s, err := ParseBound(start, false, loc)
	if err != nil {
		return nil, perr.WithField(err, KeyCustomStart)
	}
	e, err := ParseBound(end, true, loc)
	if err != nil {
		return nil, perr.WithField(err, KeyCustomEnd)
	}
	return &DateRange{Start: s, End: e}, nil
}
