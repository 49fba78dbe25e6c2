package cronexpr

import (
	"errors"
	"time"
)

// ErrUnsatisfiableSchedule is returned by operations that need a fully
// determined schedule when no instant can satisfy it: a required field set
// is empty, or the calendar never produces a matching date (for example
// "0 0 30 2 *"). It is distinct from a *SyntaxError: the expression text
// was well formed.
var ErrUnsatisfiableSchedule = errors.New("cronexpr: unsatisfiable schedule")

// maxSearchYears bounds the backward calendar scan in LastDue. Eight years
// covers the longest possible gap between occurrences of February 29.
const maxSearchYears = 8

// LastDue returns the most recent instant at least one minute before ref
// that satisfies the schedule. It is shorthand for
// LastDueBefore(ref, time.Minute).
func (s *Schedule) LastDue(ref time.Time) (time.Time, error) {
	return s.LastDueBefore(ref, time.Minute)
}

// LastDueBefore returns the latest instant no later than ref minus
// stepBack that satisfies the schedule. The reference is evaluated in the
// schedule's location with seconds truncated. A negative stepBack is
// treated as zero, so the result never lies after the reference. It
// returns ErrUnsatisfiableSchedule when the schedule can never match.
//
// LastDueBefore is a pure function: calling it twice with the same
// arguments yields the same result.
func (s *Schedule) LastDueBefore(ref time.Time, stepBack time.Duration) (time.Time, error) {
	if len(s.minutes) == 0 || len(s.hours) == 0 || len(s.months) == 0 {
		return time.Time{}, ErrUnsatisfiableSchedule
	}
	days, weekdays := s.daySet(), s.weekdaySet()
	if len(days) == 0 && len(weekdays) == 0 {
		return time.Time{}, ErrUnsatisfiableSchedule
	}
	if stepBack < 0 {
		stepBack = 0
	}

	// Truncate to the wall-clock minute in the schedule's zone, then step
	// back. The common case is that the result already matches.
	t := ref.In(s.loc)
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, s.loc)
	t = t.Add(-stepBack)
	if s.Matches(t) {
		return t, nil
	}

	year, month, day := t.Year(), int(t.Month()), t.Day()

	// Minute borrow: the nearest earlier minute within the same hour. If
	// the rest of the instant does not match either, no minute in this
	// hour can help, so borrow into the hour field.
	if m, ok := prevInSet(s.minutes, t.Minute()); ok {
		cand := time.Date(year, time.Month(month), day, t.Hour(), m, 0, 0, s.loc)
		if s.Matches(cand) {
			return cand, nil
		}
	}
	lastMinute := maxInSet(s.minutes)

	// Hour borrow: the nearest earlier hour on the same date, paired with
	// the latest allowed minute.
	if h, ok := prevInSet(s.hours, t.Hour()); ok {
		cand := time.Date(year, time.Month(month), day, h, lastMinute, 0, 0, s.loc)
		if s.Matches(cand) {
			return cand, nil
		}
	}
	lastHour := maxInSet(s.hours)

	// The match is on an earlier date. Resolve the day-of-month and
	// weekday paths independently; with both fields constrained a match
	// via either counts, so the later of the two candidates wins.
	var best time.Time
	if y, m, d, ok := s.prevDayOfMonth(year, month, day); ok {
		best = time.Date(y, time.Month(m), d, lastHour, lastMinute, 0, 0, s.loc)
	}
	if date, ok := s.prevWeekday(year, month, day); ok {
		cand := time.Date(date.Year(), date.Month(), date.Day(), lastHour, lastMinute, 0, 0, s.loc)
		if cand.After(best) {
			best = cand
		}
	}
	if best.IsZero() {
		return time.Time{}, ErrUnsatisfiableSchedule
	}
	return best, nil
}

// prevDayOfMonth finds the latest calendar date strictly before
// year/month/day whose day-of-month and month are both in the schedule's
// sets. Candidate days are re-validated against the length of each
// resolved month, so a 31st steps past 30-day months and a February 29
// walks back year by year to the nearest leap year.
func (s *Schedule) prevDayOfMonth(year, month, day int) (y, m, d int, ok bool) {
	days := s.daySet()
	if len(days) == 0 {
		return 0, 0, 0, false
	}

	if setContains(s.months, month) {
		if dd, ok := prevInSet(days, day); ok {
			return year, month, dd, true
		}
	}

	// Walk backward through the months of the month set, clamping the day
	// candidate to each month's actual length.
	limit := year - maxSearchYears
	y, m = year, month
	for {
		mm, found := prevInSet(s.months, m)
		if !found {
			y--
			mm = maxInSet(s.months)
		}
		m = mm
		if y < limit {
			return 0, 0, 0, false
		}
		if dd, found := prevInSet(days, daysInMonth(y, m)+1); found {
			return y, m, dd, true
		}
	}
}

// prevWeekday finds the latest calendar date strictly before
// year/month/day whose weekday is in the schedule's weekday set and whose
// month is in the month set. The result is returned at midnight in the
// schedule's location.
func (s *Schedule) prevWeekday(year, month, day int) (time.Time, bool) {
	weekdays := s.weekdaySet()
	if len(weekdays) == 0 {
		return time.Time{}, false
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, s.loc)
	date := start.AddDate(0, 0, -prevWeekdayDelta(weekdays, int(start.Weekday())))
	if setContains(s.months, int(date.Month())) {
		return date, true
	}

	// The stepped-to date fell in an excluded month. Roll back to the last
	// day of the nearest allowed month and take the previous matching
	// weekday from there; stepping at most seven days from the last day of
	// a month stays within that month.
	y, m := date.Year(), int(date.Month())
	mm, found := prevInSet(s.months, m)
	if !found {
		y--
		mm = maxInSet(s.months)
	}
	last := time.Date(y, time.Month(mm), daysInMonth(y, mm), 0, 0, 0, 0, s.loc)
	if setContains(weekdays, int(last.Weekday())) {
		return last, true
	}
	return last.AddDate(0, 0, -prevWeekdayDelta(weekdays, int(last.Weekday()))), true
}

// prevWeekdayDelta returns how many days to step back from a date with the
// given weekday to reach the previous date whose weekday is in the set,
// wrapping through the week when no strictly smaller value exists. The
// result is between 1 and 7.
func prevWeekdayDelta(set []int, weekday int) int {
	if w, ok := prevInSet(set, weekday); ok {
		return weekday - w
	}
	return weekday + 7 - maxInSet(set)
}

// isLeapYear implements the Gregorian rule: divisible by 4, and not a
// centennial year unless divisible by 400.
func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

var monthLengths = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysInMonth returns the number of days in the given month and year.
func daysInMonth(y, m int) int {
	if m == 2 && isLeapYear(y) {
		return 29
	}
	return monthLengths[m]
}
