package cronexpr

import (
	"strings"
	"time"
)

// Validate reports whether the expression parses. It never returns an
// error; use ValidateExpr for the underlying *SyntaxError.
func Validate(expr string) bool {
	_, err := Parse(expr)
	return err == nil
}

// ValidateExpr validates a cron expression and returns the parse error,
// or nil if the expression is valid.
//
// Example:
//
//	if err := cronexpr.ValidateExpr(userInput); err != nil {
//	    return fmt.Errorf("invalid cron expression: %w", err)
//	}
func ValidateExpr(expr string) error {
	_, err := Parse(expr)
	return err
}

// ValidateMany validates multiple expressions at once and returns a map of
// index to error for the invalid ones. If all expressions are valid the
// map is empty (not nil). Useful for checking configuration files before
// deployment.
func ValidateMany(exprs []string) map[int]error {
	errs := make(map[int]error)
	for i, expr := range exprs {
		if _, err := Parse(expr); err != nil {
			errs[i] = err
		}
	}
	return errs
}

// Analysis contains detailed information about a parsed cron expression.
type Analysis struct {
	// Valid indicates whether the expression was successfully parsed.
	Valid bool

	// Error contains the parsing error if Valid is false.
	Error error

	// Location is the timezone for the schedule.
	Location *time.Location

	// Fields contains the raw field values after alias substitution.
	// Keys: "minute", "hour", "day_of_month", "month", "day_of_week".
	Fields map[string]string

	// Schedule is the parsed schedule, available for further inspection.
	// Nil if the expression is invalid.
	Schedule *Schedule

	// Warnings contains non-fatal notes about the schedule, for example
	// that both day fields are restricted and combine with OR.
	Warnings []string
}

// Analyze parses an expression and reports validity, the resolved
// location, the raw per-field text, and any warnings. It is useful for
// configuration validation with detailed feedback and for UI previews.
func Analyze(expr string) Analysis {
	result := Analysis{Fields: make(map[string]string)}

	sched, err := Parse(expr)
	if err != nil {
		result.Error = err
		return result
	}
	result.Valid = true
	result.Schedule = sched
	result.Location = sched.Location()
	result.collectFields(expr)

	if len(sched.daySet()) > 0 && len(sched.weekdaySet()) > 0 {
		result.Warnings = append(result.Warnings,
			"both day-of-month and day-of-week are restricted; an instant matching either field is due")
	}
	return result
}

// collectFields records the raw field text of a known-valid expression.
func (r *Analysis) collectFields(expr string) {
	_, rest, err := cutTimezone(expr)
	if err != nil {
		return
	}
	rest = strings.ToLower(strings.TrimSpace(rest))
	if alias, ok := aliases[rest]; ok {
		rest = alias
	}

	fields := strings.Fields(rest)
	if len(fields) != 5 {
		return
	}
	r.Fields["minute"] = fields[0]
	r.Fields["hour"] = fields[1]
	r.Fields["day_of_month"] = fields[2]
	r.Fields["month"] = fields[3]
	r.Fields["day_of_week"] = fields[4]
}
