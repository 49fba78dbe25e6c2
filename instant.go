package cronexpr

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInstant is wrapped by ParseInstant errors for values that are
// not one of the accepted instant representations.
var ErrInvalidInstant = errors.New("cronexpr: invalid instant")

// Now is the instant literal accepted by ParseInstant for the current time.
const Now = "now"

// instantLayouts are the string layouts accepted for instants, tried in
// order. Layouts without an explicit offset are interpreted in the
// caller-supplied location.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant converts any accepted instant representation into a
// time.Time: the literal "now", an ISO-style date/time string, an integer
// epoch timestamp in seconds, or a time.Time value. Other values yield an
// error wrapping ErrInvalidInstant.
//
// Strings without zone information and epoch timestamps are interpreted in
// loc; a nil loc means the process-local zone. A time.Time value keeps its
// own location.
func ParseInstant(v any, loc *time.Location) (time.Time, error) {
	return ParseInstantAt(v, loc, RealClock{})
}

// ParseInstantAt is like ParseInstant but resolves the "now" literal
// against the given clock, which makes it deterministic under test.
func ParseInstantAt(v any, loc *time.Location, clock Clock) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		if x == Now {
			return clock.Now().In(loc), nil
		}
		for _, layout := range instantLayouts {
			if t, err := time.ParseInLocation(layout, x, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: cannot parse %q as a time", ErrInvalidInstant, x)
	case int:
		return time.Unix(int64(x), 0).In(loc), nil
	case int64:
		return time.Unix(x, 0).In(loc), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidInstant, v)
	}
}
