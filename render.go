package cronexpr

import (
	"strconv"
	"strings"
)

// Render returns the canonical cron text for the schedule. The result is
// semantically equivalent to the source expression but not guaranteed to
// be byte-identical: full ranges collapse to "*", arithmetic progressions
// to "a-b/n" or "*/n", and named values are rendered numerically. Render
// returns ErrUnsatisfiableSchedule when a required field set is empty or
// both day fields are empty.
func (s *Schedule) Render() (string, error) {
	if len(s.minutes) == 0 || len(s.hours) == 0 || len(s.months) == 0 {
		return "", ErrUnsatisfiableSchedule
	}
	days, weekdays := s.daySet(), s.weekdaySet()
	if len(days) == 0 && len(weekdays) == 0 {
		return "", ErrUnsatisfiableSchedule
	}

	parts := []string{
		renderSet(s.minutes, fieldBounds[FieldMinute]),
		renderSet(s.hours, fieldBounds[FieldHour]),
		renderSet(days, fieldBounds[FieldDayOfMonth]),
		renderSet(s.months, fieldBounds[FieldMonth]),
		renderSet(weekdays, fieldBounds[FieldDayOfWeek]),
	}
	return strings.Join(parts, " "), nil
}

// String renders the schedule as canonical cron text, or the empty string
// when the schedule is unsatisfiable.
func (s *Schedule) String() string {
	text, err := s.Render()
	if err != nil {
		return ""
	}
	return text
}

// renderSet renders one field's value set. An empty set stands for the
// unconstrained half of the day/weekday pair and renders as "*".
func renderSet(set []int, b bounds) string {
	switch {
	case len(set) == 0:
		return "*"
	case len(set) == b.max-b.min+1:
		return "*"
	case len(set) == 1:
		return strconv.Itoa(set[0])
	}

	if step, ok := progressionStep(set); ok {
		first, last := set[0], set[len(set)-1]
		if first == b.min && last+step > b.max {
			// The progression spans the whole field.
			if step == 1 {
				return "*"
			}
			return "*/" + strconv.Itoa(step)
		}
		text := strconv.Itoa(first) + "-" + strconv.Itoa(last)
		if step > 1 {
			text += "/" + strconv.Itoa(step)
		}
		return text
	}

	var sb strings.Builder
	for i, v := range set {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// progressionStep reports whether the set (three or more values) forms an
// arithmetic progression and returns its constant difference.
func progressionStep(set []int) (int, bool) {
	if len(set) < 3 {
		return 0, false
	}
	step := set[1] - set[0]
	for i := 2; i < len(set); i++ {
		if set[i]-set[i-1] != step {
			return 0, false
		}
	}
	return step, true
}
