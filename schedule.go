package cronexpr

import (
	"slices"
	"sort"
	"time"
)

// Field identifies one of the five positions of a cron expression.
type Field int

// The five cron fields, in expression order.
const (
	FieldMinute Field = iota
	FieldHour
	FieldDayOfMonth
	FieldMonth
	FieldDayOfWeek

	numFields
)

func (f Field) String() string {
	switch f {
	case FieldMinute:
		return "minute"
	case FieldHour:
		return "hour"
	case FieldDayOfMonth:
		return "day-of-month"
	case FieldMonth:
		return "month"
	case FieldDayOfWeek:
		return "day-of-week"
	default:
		return "expression"
	}
}

// bounds provides the range of acceptable values for one field, plus a map
// of name to value for fields that accept 3-letter names.
type bounds struct {
	min, max int
	names    map[string]int
}

// The bounds for each field, indexed by Field.
var fieldBounds = [numFields]bounds{
	FieldMinute:     {0, 59, nil},
	FieldHour:       {0, 23, nil},
	FieldDayOfMonth: {1, 31, nil},
	FieldMonth: {1, 12, map[string]int{
		"jan": 1,
		"feb": 2,
		"mar": 3,
		"apr": 4,
		"may": 5,
		"jun": 6,
		"jul": 7,
		"aug": 8,
		"sep": 9,
		"oct": 10,
		"nov": 11,
		"dec": 12,
	}},
	FieldDayOfWeek: {0, 6, map[string]int{
		"sun": 0,
		"mon": 1,
		"tue": 2,
		"wed": 3,
		"thu": 4,
		"fri": 5,
		"sat": 6,
	}},
}

// Schedule is a parsed five-field cron expression. Each field is stored as
// a sorted set of allowed values; the day-of-month and day-of-week fields
// additionally record whether their source token was a bare asterisk, which
// drives the day/weekday rule (see the package documentation).
//
// A Schedule is immutable once built and safe for concurrent use.
type Schedule struct {
	minutes  []int
	hours    []int
	days     []int
	months   []int
	weekdays []int

	dayWildcard     bool
	weekdayWildcard bool

	loc *time.Location
}

// daySet returns the effective day-of-month set. A wildcarded day field is
// unconstrained (nil) unless the weekday field was also wildcarded, in
// which case the day field is the one that is kept.
func (s *Schedule) daySet() []int {
	if s.dayWildcard && !s.weekdayWildcard {
		return nil
	}
	return s.days
}

// weekdaySet returns the effective day-of-week set. A wildcarded weekday
// field is always unconstrained.
func (s *Schedule) weekdaySet() []int {
	if s.weekdayWildcard {
		return nil
	}
	return s.weekdays
}

// Location returns the time zone the schedule is evaluated in.
func (s *Schedule) Location() *time.Location {
	return s.loc
}

// Minutes returns a copy of the allowed minute values.
func (s *Schedule) Minutes() []int { return slices.Clone(s.minutes) }

// Hours returns a copy of the allowed hour values.
func (s *Schedule) Hours() []int { return slices.Clone(s.hours) }

// Days returns a copy of the effective day-of-month values. It is empty
// when the day field is unconstrained and the weekday field decides.
func (s *Schedule) Days() []int { return slices.Clone(s.daySet()) }

// Months returns a copy of the allowed month values (1 = January).
func (s *Schedule) Months() []int { return slices.Clone(s.months) }

// Weekdays returns a copy of the effective day-of-week values
// (0 = Sunday). It is empty when the weekday field is unconstrained.
func (s *Schedule) Weekdays() []int { return slices.Clone(s.weekdaySet()) }

// Matches reports whether the given instant satisfies the schedule.
// Seconds and finer are ignored. The instant is evaluated in the
// schedule's location.
func (s *Schedule) Matches(t time.Time) bool {
	t = t.In(s.loc)
	if !setContains(s.minutes, t.Minute()) ||
		!setContains(s.hours, t.Hour()) ||
		!setContains(s.months, int(t.Month())) {
		return false
	}
	// Day-of-month and day-of-week combine with OR. An unconstrained field
	// has an empty effective set and so never matches on its own, which
	// leaves the decision to the other field.
	return setContains(s.daySet(), t.Day()) || setContains(s.weekdaySet(), int(t.Weekday()))
}

// WithField returns a copy of the schedule with one field re-parsed from
// the given text. The receiver is unchanged. The day/weekday rule is
// re-applied against the new field, so setting an explicit weekday on a
// schedule built from "0 0 * * *" constrains it to that weekday.
func (s *Schedule) WithField(f Field, expr string) (*Schedule, error) {
	if f < FieldMinute || f >= numFields {
		return nil, &SyntaxError{Field: -1, Value: expr, Message: "field index out of range"}
	}
	values, wildcard, err := parseField(expr, f)
	if err != nil {
		return nil, err
	}

	c := *s
	switch f {
	case FieldMinute:
		c.minutes = values
	case FieldHour:
		c.hours = values
	case FieldDayOfMonth:
		c.days, c.dayWildcard = values, wildcard
	case FieldMonth:
		c.months = values
	case FieldDayOfWeek:
		c.weekdays, c.weekdayWildcard = values, wildcard
	}
	return &c, nil
}

// setContains reports whether the sorted set contains v.
func setContains(set []int, v int) bool {
	i := sort.SearchInts(set, v)
	return i < len(set) && set[i] == v
}

// prevInSet returns the greatest set element strictly less than v.
// The set must be sorted ascending.
func prevInSet(set []int, v int) (int, bool) {
	i := sort.SearchInts(set, v)
	if i == 0 {
		return 0, false
	}
	return set[i-1], true
}

// maxInSet returns the greatest element of a non-empty sorted set.
func maxInSet(set []int) int {
	return set[len(set)-1]
}
