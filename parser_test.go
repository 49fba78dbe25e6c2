package cronexpr

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

// seq returns the integers from lo to hi inclusive, stepped.
func seq(lo, hi, step int) []int {
	var out []int
	for v := lo; v <= hi; v += step {
		out = append(out, v)
	}
	return out
}

func TestParseField(t *testing.T) {
	tests := []struct {
		expr     string
		field    Field
		expected []int
		wildcard bool
	}{
		{"*", FieldMinute, seq(0, 59, 1), true},
		{"*/1", FieldMinute, seq(0, 59, 1), false},
		{"*/15", FieldMinute, []int{0, 15, 30, 45}, false},
		{"3-59/15", FieldMinute, []int{3, 18, 33, 48}, false},
		{"5", FieldMinute, []int{5}, false},
		{"5,6,7", FieldMinute, []int{5, 6, 7}, false},
		{"7,6,5,5", FieldMinute, []int{5, 6, 7}, false},
		{"0-4,50-59/3", FieldMinute, []int{0, 1, 2, 3, 4, 50, 53, 56, 59}, false},

		{"*", FieldHour, seq(0, 23, 1), true},
		{"9-17", FieldHour, seq(9, 17, 1), false},

		{"*", FieldDayOfMonth, seq(1, 31, 1), true},
		{"1-31", FieldDayOfMonth, seq(1, 31, 1), false},
		{"5,*", FieldDayOfMonth, seq(1, 31, 1), false},

		{"jan", FieldMonth, []int{1}, false},
		{"JAN,mar", FieldMonth, []int{1, 3}, false},
		{"jan-mar", FieldMonth, []int{1, 2, 3}, false},
		{"dec", FieldMonth, []int{12}, false},

		{"0", FieldDayOfWeek, []int{0}, false},
		{"7", FieldDayOfWeek, []int{0}, false},
		{"sun", FieldDayOfWeek, []int{0}, false},
		{"6-7", FieldDayOfWeek, []int{0, 6}, false},
		{"fri-sun", FieldDayOfWeek, []int{0, 5, 6}, false},
		{"0-7", FieldDayOfWeek, seq(0, 6, 1), false},
		{"sun-sat", FieldDayOfWeek, seq(0, 6, 1), false},
		{"mon,wed,fri", FieldDayOfWeek, []int{1, 3, 5}, false},
		{"*", FieldDayOfWeek, seq(0, 6, 1), true},
	}

	for _, c := range tests {
		values, wildcard, err := parseField(c.expr, c.field)
		if err != nil {
			t.Errorf("%s (%s) => unexpected error %v", c.expr, c.field, err)
			continue
		}
		if !reflect.DeepEqual(values, c.expected) {
			t.Errorf("%s (%s) => expected %v, got %v", c.expr, c.field, c.expected, values)
		}
		if wildcard != c.wildcard {
			t.Errorf("%s (%s) => expected wildcard=%v, got %v", c.expr, c.field, c.wildcard, wildcard)
		}
	}
}

func TestParseFieldErrors(t *testing.T) {
	tests := []struct {
		expr  string
		field Field
		err   string
	}{
		{"60", FieldMinute, "value 60 out of range 0-59"},
		{"24", FieldHour, "value 24 out of range 0-23"},
		{"0", FieldDayOfMonth, "value 0 out of range 1-31"},
		{"32", FieldDayOfMonth, "value 32 out of range 1-31"},
		{"13", FieldMonth, "value 13 out of range 1-12"},
		{"8", FieldDayOfWeek, "value 8 out of range 0-6"},

		{"5-2", FieldMinute, "range start 5 not below end 2"},
		{"5-5", FieldMinute, "range start 5 not below end 5"},
		{"1-32", FieldDayOfMonth, "range end 32 above maximum 31"},
		{"6-8", FieldDayOfWeek, "range end 8 above maximum 7"},

		{"*/0", FieldMinute, "step must be a positive number"},
		{"5/2", FieldMinute, "step requires a range or wildcard"},
		{"*//2", FieldMinute, "failed to parse"},
		{"*/-2", FieldMinute, "negative number"},
		{"x", FieldMinute, "failed to parse"},
		{"", FieldMinute, "empty field"},
		{"5,,6", FieldMinute, "empty token"},
		{"jan-x", FieldMonth, "failed to parse"},

		// Names match exactly; concatenations and partial names are not
		// numbers and not known names.
		{"janfeb", FieldMonth, "failed to parse"},
		{"ja", FieldMonth, "failed to parse"},
		{"sunsun", FieldDayOfWeek, "failed to parse"},
		{"mon", FieldMonth, "failed to parse"},
	}

	for _, c := range tests {
		_, _, err := parseField(c.expr, c.field)
		if err == nil || !strings.Contains(err.Error(), c.err) {
			t.Errorf("%s (%s) => expected error containing %q, got %v", c.expr, c.field, c.err, err)
		}
		var syntaxErr *SyntaxError
		if err != nil && !errors.As(err, &syntaxErr) {
			t.Errorf("%s (%s) => expected *SyntaxError, got %T", c.expr, c.field, err)
		} else if err != nil && syntaxErr.Field != c.field {
			t.Errorf("%s => expected error on %s field, got %s", c.expr, c.field, syntaxErr.Field)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct{ expr, err string }{
		{"", "empty expression"},
		{"   ", "empty expression"},
		{"* * * *", "expected exactly 5 fields, found 4"},
		{"* * * * * *", "expected exactly 5 fields, found 6"},
		{"60 * * * *", "value 60 out of range"},
		{"5-2 * * * *", "range start 5 not below end 2"},
		{"@unrecognized", "unrecognized alias"},
		{"@every 1h", "unrecognized alias"},
		{"TZ=Foo/Bar * * * * *", "unknown time zone"},
		{"TZ=bad;zone * * * * *", "invalid timezone"},
		{"TZ=UTC", "missing fields after timezone"},
		{strings.Repeat("*", MaxExprLength+1), "expression too long"},
	}

	for _, c := range tests {
		_, err := Parse(c.expr)
		if err == nil || !strings.Contains(err.Error(), c.err) {
			t.Errorf("%q => expected error containing %q, got %v", c.expr, c.err, err)
		}
	}
}

func TestParseAliases(t *testing.T) {
	tests := []struct{ alias, equivalent string }{
		{"@yearly", "0 0 1 1 *"},
		{"@annually", "0 0 1 1 *"},
		{"@monthly", "0 0 1 * *"},
		{"@weekly", "0 0 * * 0"},
		{"@daily", "0 0 * * *"},
		{"@midnight", "0 0 * * *"},
		{"@hourly", "0 * * * *"},
	}

	for _, c := range tests {
		got, err := ParseInLocation(c.alias, time.UTC)
		if err != nil {
			t.Fatalf("%s => unexpected error %v", c.alias, err)
		}
		want, err := ParseInLocation(c.equivalent, time.UTC)
		if err != nil {
			t.Fatalf("%s => unexpected error %v", c.equivalent, err)
		}
		if !schedulesEqual(got, want) {
			t.Errorf("%s => expected same sets as %q, got %q", c.alias, c.equivalent, got)
		}
	}

	// Aliases are recognized case-insensitively like the rest of the text.
	if _, err := Parse("@DAILY"); err != nil {
		t.Errorf("@DAILY => unexpected error %v", err)
	}
}

// schedulesEqual compares the effective field sets of two schedules.
func schedulesEqual(a, b *Schedule) bool {
	return reflect.DeepEqual(a.Minutes(), b.Minutes()) &&
		reflect.DeepEqual(a.Hours(), b.Hours()) &&
		reflect.DeepEqual(a.Days(), b.Days()) &&
		reflect.DeepEqual(a.Months(), b.Months()) &&
		reflect.DeepEqual(a.Weekdays(), b.Weekdays())
}

func TestDayWeekdayResolution(t *testing.T) {
	tests := []struct {
		expr     string
		days     []int
		weekdays []int
	}{
		// Weekday wildcarded: day kept, weekday unconstrained.
		{"0 0 5 * *", []int{5}, nil},
		// Day wildcarded: weekday kept, day unconstrained.
		{"0 0 * * 1", nil, []int{1}},
		// Both wildcarded: day kept (the full range), weekday unconstrained.
		{"0 0 * * *", seq(1, 31, 1), nil},
		// Neither wildcarded: both kept, OR semantics.
		{"0 0 1 * 1", []int{1}, []int{1}},
		// "5,*" is a full range but not a bare wildcard, so the day field
		// stays constrained (to every day) alongside the explicit weekday.
		{"0 0 5,* * 1", seq(1, 31, 1), []int{1}},
		// "*/2" spans the range with a step; not a wildcard either.
		{"0 0 */2 * 1", seq(1, 31, 2), []int{1}},
	}

	for _, c := range tests {
		s, err := ParseInLocation(c.expr, time.UTC)
		if err != nil {
			t.Fatalf("%s => unexpected error %v", c.expr, err)
		}
		if got := s.Days(); !reflect.DeepEqual(got, c.days) {
			t.Errorf("%s => expected days %v, got %v", c.expr, c.days, got)
		}
		if got := s.Weekdays(); !reflect.DeepEqual(got, c.weekdays) {
			t.Errorf("%s => expected weekdays %v, got %v", c.expr, c.weekdays, got)
		}
	}
}

func TestParseTimezonePrefix(t *testing.T) {
	s, err := Parse("TZ=UTC 30 4 * * *")
	if err != nil {
		t.Fatal(err)
	}
	if s.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", s.Location())
	}

	s, err = Parse("CRON_TZ=UTC 30 4 * * *")
	if err != nil {
		t.Fatal(err)
	}
	if s.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", s.Location())
	}

	// An explicit location wins over the prefix.
	fixed := time.FixedZone("FIXED", 3*3600)
	s, err = ParseInLocation("TZ=UTC 30 4 * * *", fixed)
	if err != nil {
		t.Fatal(err)
	}
	if s.Location() != fixed {
		t.Errorf("expected explicit location to win, got %v", s.Location())
	}

	// Timezone failures are *SyntaxError like every other parse failure.
	for _, expr := range []string{"TZ=Nope/Nope 30 4 * * *", "TZ=bad;zone 30 4 * * *"} {
		_, err := Parse(expr)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("%q => expected *SyntaxError, got %T (%v)", expr, err, err)
		}
	}
}

func TestValidateProperty(t *testing.T) {
	valid := []string{
		"* * * * *",
		"0 0 1 1 *",
		"*/5 9-17 * * mon-fri",
		"@hourly",
		"0 12 1,15 jan,jul *",
	}
	for _, expr := range valid {
		if !Validate(expr) {
			t.Errorf("%q => expected valid", expr)
		}
	}

	invalid := []string{
		"",
		"* * * *",
		"60 * * * *",
		"5-2 * * * *",
		"* * * * 8",
		"0 0 1 janfeb *",
		"0 0 * * sunsun",
	}
	for _, expr := range invalid {
		if Validate(expr) {
			t.Errorf("%q => expected invalid", expr)
		}
	}
}
