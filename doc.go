/*
Package cronexpr implements a standard five-field cron expression engine:
parsing, matching an instant against a schedule, searching backward for the
most recent due instant, and rendering a schedule back to canonical cron
syntax.

# Installation

To download the package, run:

	go get github.com/netresearch/go-cronexpr

Import it in your program as:

	import "github.com/netresearch/go-cronexpr"

It requires Go 1.25 or later.

# Usage

	sched, err := cronexpr.Parse("0 9 * * mon-fri")
	if err != nil {
	    // *cronexpr.SyntaxError describing the bad field
	}
	sched.Matches(time.Now())              // does this instant satisfy the schedule?
	sched.IsDue(time.Now())                // same check, minute granularity
	prev, err := sched.LastDue(time.Now()) // most recent prior due instant
	fmt.Println(sched)                     // canonical cron text

Callers that poll irregularly can catch a due instant that fell between two
checks:

	due, err := sched.IsDueSince(time.Now(), lastChecked)

The engine only evaluates expressions. Running jobs, persisting last-run
times, and retry policy belong to the caller.

# Expression Format

A cron expression represents a set of times, using 5 space-separated fields.

	Field name   | Mandatory? | Allowed values  | Allowed special characters
	----------   | ---------- | --------------  | --------------------------
	Minutes      | Yes        | 0-59            | * / , -
	Hours        | Yes        | 0-23            | * / , -
	Day of month | Yes        | 1-31            | * / , -
	Month        | Yes        | 1-12 or JAN-DEC | * / , -
	Day of week  | Yes        | 0-6 or SUN-SAT  | * / , -

Month and Day-of-week field values are case insensitive. "SUN", "Sun", and
"sun" are equally accepted. A day-of-week value of 7 is accepted as another
spelling of Sunday, both as a single value and as the end of a range
("5-7" means Friday through Sunday).

The specific interpretation of the format is based on the Cron Wikipedia page:
https://en.wikipedia.org/wiki/Cron

# Special Characters

Asterisk ( * )

The asterisk indicates that the expression matches all values of the field.
A bare asterisk in the day-of-month or day-of-week field additionally marks
that field as unconstrained for the purposes of the day/weekday rule below.

Slash ( / )

Slashes describe increments of ranges. "3-57/15" in the minutes field
indicates the 3rd minute of the hour and every 15 minutes thereafter within
the range. A step applied to a bare asterisk spans the full field range, so
in the minutes field a step of 10 means minutes 0, 10, 20, 30, 40 and 50.

Comma ( , )

Commas separate items of a list. "MON,WED,FRI" in the day-of-week field
means Mondays, Wednesdays and Fridays.

Hyphen ( - )

Hyphens define inclusive ranges. "9-17" in the hours field indicates every
hour between 9am and 5pm. The start of a range must be less than its end.

# Day of Month and Day of Week

When both the day-of-month and the day-of-week field carry explicit values,
an instant is due when either field matches (the traditional cron OR rule):

	0 0 1 * MON

is due on the first of every month and on every Monday. When one of the two
fields is a bare asterisk, only the other field is consulted:

	0 0 * * MON

is due on Mondays only.

# Predefined Schedules

In place of an expression, one of these aliases may be used:

	Entry                  | Description                                | Equivalent To
	-----                  | -----------                                | -------------
	@yearly (or @annually) | Run once a year, midnight, Jan. 1st        | 0 0 1 1 *
	@monthly               | Run once a month, midnight, first of month | 0 0 1 * *
	@weekly                | Run once a week, midnight between Sat/Sun  | 0 0 * * 0
	@daily (or @midnight)  | Run once a day, midnight                   | 0 0 * * *
	@hourly                | Run once an hour, beginning of hour        | 0 * * * *

# Time Zones

Parse interprets times in the process-local zone unless the expression
carries a zone prefix:

	CRON_TZ=Asia/Tokyo 30 04 * * *

The older "TZ=" prefix is accepted as a synonym. ParseInLocation pins the
schedule to an explicit location and takes precedence over any prefix.

# Thread Safety

A Schedule is immutable once built and safe for concurrent use. Methods
that derive a changed schedule (WithField) return a fresh instance and
leave the receiver untouched.
*/
package cronexpr
