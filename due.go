package cronexpr

import "time"

// DueResult is the structured answer of CheckDue.
type DueResult struct {
	// Due reports whether the schedule is due.
	Due bool

	// Now is the reference instant normalized to the schedule's location
	// with seconds truncated.
	Now time.Time

	// Matched is the instant that made the schedule due: Now itself on a
	// direct match, or the computed last-due instant when a missed run was
	// caught via lastChecked. Zero when Due is false.
	Matched time.Time
}

// IsDue reports whether the schedule is due at the given instant, at
// minute granularity.
func (s *Schedule) IsDue(now time.Time) bool {
	return s.Matches(now)
}

// IsDueSince reports whether the schedule is due at now, or was due at
// some instant after lastChecked that the caller missed. It supports
// callers that poll irregularly rather than exactly once per minute.
func (s *Schedule) IsDueSince(now, lastChecked time.Time) (bool, error) {
	res, err := s.CheckDue(now, lastChecked)
	return res.Due, err
}

// CheckDue is the structured form of IsDueSince. A zero lastChecked means
// no previous check was recorded; in that case only a direct match at now
// counts. It returns ErrUnsatisfiableSchedule when a missed-run search is
// needed but the schedule can never match.
func (s *Schedule) CheckDue(now, lastChecked time.Time) (DueResult, error) {
	n := now.In(s.loc)
	n = time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), 0, 0, s.loc)
	res := DueResult{Now: n}

	if s.Matches(n) {
		res.Due = true
		res.Matched = n
		return res, nil
	}
	if lastChecked.IsZero() {
		return res, nil
	}

	prev, err := s.LastDue(n)
	if err != nil {
		return res, err
	}
	if prev.After(lastChecked) {
		res.Due = true
		res.Matched = prev
	}
	return res, nil
}
