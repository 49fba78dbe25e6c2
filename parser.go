package cronexpr

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MaxExprLength is the maximum allowed length for a cron expression.
// This limit prevents resource exhaustion from extremely long inputs.
const MaxExprLength = 1024

// SyntaxError describes a malformed cron expression. It carries the field
// the offending token belongs to (or -1 when the expression as a whole is
// malformed) and the raw text that failed to parse.
type SyntaxError struct {
	Field   Field
	Value   string
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Field >= FieldMinute && e.Field < numFields {
		return fmt.Sprintf("cronexpr: %s in %s field: %q", e.Message, e.Field, e.Value)
	}
	return fmt.Sprintf("cronexpr: %s: %q", e.Message, e.Value)
}

// aliases are the predefined schedules accepted in place of a full
// expression. They are substituted before field splitting.
var aliases = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
}

// Parse returns the Schedule represented by a five-field cron expression
// or one of the predefined @ aliases. The expression may carry a
// "CRON_TZ=" or "TZ=" prefix naming the zone the schedule is evaluated in;
// without one the schedule uses the process-local zone.
//
// Parse returns a *SyntaxError describing the offending field on any
// malformed input.
func Parse(expr string) (*Schedule, error) {
	return parse(expr, nil)
}

// ParseInLocation is like Parse but pins the schedule to the given
// location, overriding any zone prefix in the expression. A nil location
// means the process-local zone.
func ParseInLocation(expr string, loc *time.Location) (*Schedule, error) {
	return parse(expr, loc)
}

func parse(expr string, loc *time.Location) (*Schedule, error) {
	if len(strings.TrimSpace(expr)) == 0 {
		return nil, &SyntaxError{Field: -1, Value: expr, Message: "empty expression"}
	}
	if len(expr) > MaxExprLength {
		return nil, &SyntaxError{Field: -1, Value: expr[:32] + "...", Message: fmt.Sprintf("expression too long: %d > %d", len(expr), MaxExprLength)}
	}

	prefixLoc, rest, err := cutTimezone(expr)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = prefixLoc
	}
	if loc == nil {
		loc = time.Local
	}

	rest = strings.ToLower(strings.TrimSpace(rest))
	if strings.HasPrefix(rest, "@") {
		alias, ok := aliases[rest]
		if !ok {
			return nil, &SyntaxError{Field: -1, Value: rest, Message: "unrecognized alias"}
		}
		rest = alias
	}

	fields := strings.Fields(rest)
	if len(fields) != 5 {
		return nil, &SyntaxError{Field: -1, Value: rest, Message: fmt.Sprintf("expected exactly 5 fields, found %d", len(fields))}
	}

	s := &Schedule{loc: loc}
	for i, text := range fields {
		values, wildcard, err := parseField(text, Field(i))
		if err != nil {
			return nil, err
		}
		switch Field(i) {
		case FieldMinute:
			s.minutes = values
		case FieldHour:
			s.hours = values
		case FieldDayOfMonth:
			s.days, s.dayWildcard = values, wildcard
		case FieldMonth:
			s.months = values
		case FieldDayOfWeek:
			s.weekdays, s.weekdayWildcard = values, wildcard
		}
	}
	return s, nil
}

// parseField expands one field's comma-separated token list into a sorted
// set of distinct values. The wildcard result is true only when the whole
// field is a bare "*": a list such as "5,*" expands to the full range but
// does not mark the field unconstrained, so the explicit values are
// subsumed by the union rather than silently dropped.
func parseField(text string, f Field) (values []int, wildcard bool, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, false, &SyntaxError{Field: f, Value: text, Message: "empty field"}
	}

	wildcard = text == "*"

	b := fieldBounds[f]
	seen := make(map[int]struct{})
	for _, tok := range strings.Split(text, ",") {
		expanded, err := expandToken(tok, f, b)
		if err != nil {
			return nil, false, err
		}
		for _, v := range expanded {
			seen[v] = struct{}{}
		}
	}

	values = make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)
	return values, wildcard, nil
}

// expandToken expands a single token, one of:
//
//	*           full range
//	*/N         full range in steps of N
//	A-B         inclusive range, A < B
//	A-B/N       inclusive range in steps of N
//	D           single value
//
// Day-of-week tokens additionally accept 7 (as a single value or a range
// end) as a synonym for Sunday; it is normalized to 0 after expansion.
func expandToken(tok string, f Field, b bounds) ([]int, error) {
	if tok == "" {
		return nil, &SyntaxError{Field: f, Value: tok, Message: "empty token"}
	}

	base, stepText, hasStep := strings.Cut(tok, "/")
	step := 1
	if hasStep {
		n, err := parseValue(stepText, f, tok)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, &SyntaxError{Field: f, Value: tok, Message: "step must be a positive number"}
		}
		step = n
	}

	var lo, hi int
	switch {
	case base == "*":
		lo, hi = b.min, b.max

	case strings.Contains(base, "-"):
		loText, hiText, _ := strings.Cut(base, "-")
		var err error
		if lo, err = parseValue(loText, f, tok); err != nil {
			return nil, err
		}
		if hi, err = parseValue(hiText, f, tok); err != nil {
			return nil, err
		}
		if f == FieldDayOfWeek && hi == 0 && hiText == "sun" {
			hi = 7 // a range ending in Sunday reads as 7, so "fri-sun" works
		}
		hiBound := b.max
		if f == FieldDayOfWeek {
			hiBound++ // 7 allowed as a range end, meaning Sunday
		}
		if lo < b.min {
			return nil, &SyntaxError{Field: f, Value: tok, Message: fmt.Sprintf("range start %d below minimum %d", lo, b.min)}
		}
		if hi > hiBound {
			return nil, &SyntaxError{Field: f, Value: tok, Message: fmt.Sprintf("range end %d above maximum %d", hi, hiBound)}
		}
		if lo >= hi {
			return nil, &SyntaxError{Field: f, Value: tok, Message: fmt.Sprintf("range start %d not below end %d", lo, hi)}
		}

	default:
		if hasStep {
			return nil, &SyntaxError{Field: f, Value: tok, Message: "step requires a range or wildcard"}
		}
		v, err := parseValue(base, f, tok)
		if err != nil {
			return nil, err
		}
		if f == FieldDayOfWeek && v == 7 {
			v = 0
		}
		if v < b.min || v > b.max {
			return nil, &SyntaxError{Field: f, Value: tok, Message: fmt.Sprintf("value %d out of range %d-%d", v, b.min, b.max)}
		}
		return []int{v}, nil
	}

	values := make([]int, 0, (hi-lo)/step+1)
	for v := lo; v <= hi; v += step {
		n := v
		if f == FieldDayOfWeek && n == 7 {
			n = 0
		}
		values = append(values, n)
	}
	return values, nil
}

// parseValue parses one component of a token, either a non-negative
// integer or a 3-letter name. Names are matched exactly against the
// field's name table, so concatenations like "janfeb" are rejected.
func parseValue(text string, f Field, tok string) (int, error) {
	if v, ok := fieldBounds[f].names[text]; ok {
		return v, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &SyntaxError{Field: f, Value: tok, Message: fmt.Sprintf("failed to parse %q as a number or name", text)}
	}
	if n < 0 {
		return 0, &SyntaxError{Field: f, Value: tok, Message: fmt.Sprintf("negative number %d not allowed", n)}
	}
	return n, nil
}

// cutTimezone strips a leading "TZ=" or "CRON_TZ=" prefix from the
// expression and loads the named zone. It returns a nil location when no
// prefix is present.
func cutTimezone(expr string) (*time.Location, string, error) {
	if !strings.HasPrefix(expr, "TZ=") && !strings.HasPrefix(expr, "CRON_TZ=") {
		return nil, expr, nil
	}

	i := strings.Index(expr, " ")
	if i == -1 {
		return nil, "", &SyntaxError{Field: -1, Value: expr, Message: "missing fields after timezone"}
	}

	eq := strings.Index(expr, "=")
	tzName := expr[eq+1 : i]
	if err := validateTimezone(tzName); err != nil {
		return nil, "", &SyntaxError{Field: -1, Value: tzName, Message: fmt.Sprintf("invalid timezone: %v", err)}
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, "", &SyntaxError{Field: -1, Value: tzName, Message: "unknown time zone"}
	}

	remaining := strings.TrimSpace(expr[i:])
	if len(remaining) == 0 {
		return nil, "", &SyntaxError{Field: -1, Value: expr, Message: "missing fields after timezone"}
	}
	return loc, remaining, nil
}

// validateTimezone checks that a zone name is safe to pass to
// time.LoadLocation. It enforces length limits and character restrictions.
func validateTimezone(tz string) error {
	const maxTimezoneLen = 64 // IANA timezone names are well under this limit
	if len(tz) == 0 {
		return errors.New("empty timezone string")
	}
	if len(tz) > maxTimezoneLen {
		return fmt.Errorf("timezone string too long (max %d chars)", maxTimezoneLen)
	}
	for i, r := range tz {
		if !isValidTimezoneChar(r) {
			return fmt.Errorf("invalid character %q at position %d in timezone", r, i)
		}
	}
	return nil
}

// isValidTimezoneChar returns true if r is a valid character in a timezone
// name. Valid chars: letters, digits, slash, underscore, hyphen, plus, colon.
func isValidTimezoneChar(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		return true
	}
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	return r == '/' || r == '_' || r == '-' || r == '+' || r == ':'
}
