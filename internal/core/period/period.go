// Package period computes reporting windows and their comparison windows
//
// A period identifier names the shape of a window (yesterday, month to date,
// last 30 days, ...). Resolving it against a single reference instant yields
// a Pair: the current window and the comparison window drawn from the
// preceding cycle. Everything here is pure and safe for concurrent use
package period

import (
	"strings"

	perr "bizdash/internal/platform/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifier names a reporting period shape
type Identifier string

// Supported identifiers, in display order
const (
	Yesterday         Identifier = "YESTERDAY"
	WeekToDate        Identifier = "WEEK_TO_DATE"
	Last7Days         Identifier = "LAST_7_DAYS"
	MonthToDate       Identifier = "MONTH_TO_DATE"
	Last30Days        Identifier = "LAST_30_DAYS"
	ThreeMonthsToDate Identifier = "THREE_MONTHS_TO_DATE"
	Last90Days        Identifier = "LAST_90_DAYS"
	SixMonthsToDate   Identifier = "SIX_MONTHS_TO_DATE"
	YearToDate        Identifier = "YEAR_TO_DATE"
	Custom            Identifier = "CUSTOM"
)

// Family groups identifiers by how their comparison window is derived
type Family string

const (
	// Rolling windows compare against the immediately preceding span of equal length
	Rolling Family = "rolling"
	// Calendar windows compare against the same position one cycle earlier
	Calendar Family = "calendar"
)

var ordered = []Identifier{
	Yesterday,
	WeekToDate,
	Last7Days,
	MonthToDate,
	Last30Days,
	ThreeMonthsToDate,
	Last90Days,
	SixMonthsToDate,
	YearToDate,
	Custom,
}

// Identifiers returns every supported identifier in display order
func Identifiers() []Identifier {
	return append([]Identifier(nil), ordered...)
}

// Default is the neutral identifier callers fall back to
func Default() Identifier { return Yesterday }

// Valid reports whether id is part of the closed enumeration
func (id Identifier) Valid() bool {
	for _, o := range ordered {
		if o == id {
			return true
		}
	}
	return false
}

// Family returns the comparison family of id
// unknown identifiers report an empty family
func (id Identifier) Family() Family {
	switch id {
	case Yesterday, WeekToDate, MonthToDate, YearToDate:
		return Calendar
	case Last7Days, Last30Days, Last90Days, ThreeMonthsToDate, SixMonthsToDate, Custom:
		return Rolling
	default:
		return ""
	}
}

// ToDate reports whether the current window of id ends at now rather than end of day
func (id Identifier) ToDate() bool {
	switch id {
	case WeekToDate, MonthToDate, ThreeMonthsToDate, SixMonthsToDate, YearToDate:
		return true
	default:
		return false
	}
}

// Label returns a human readable title, e.g. "Month To Date"
func (id Identifier) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(string(id)), "_", " "))
}

func (id Identifier) String() string { return string(id) }

// ParseIdentifier accepts identifiers case insensitively with dashes or spaces as separators
func ParseIdentifier(s string) (Identifier, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	id := Identifier(norm)
	if !id.Valid() {
		return "", perr.Wrapf(ErrUnsupportedPeriodIdentifier, perr.ErrorCodeInvalidArgument, "unsupported period %q", s)
	}
	return id, nil
}
