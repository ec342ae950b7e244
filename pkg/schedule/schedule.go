// Package schedule implements the recurring schedule projection engine: pure
// calendar arithmetic that resolves the next occurrence of a recurring
// obligation, enumerates occurrences inside a date range, and never holds
// state between calls. All entry points take explicit reference dates so the
// engine stays deterministic without mocking the clock.
package schedule

import (
	"errors"
	"fmt"
)

// BusinessDayPolicy describes how occurrences relate to business days.
// The three variants are mutually exclusive, which keeps invalid flag
// combinations unrepresentable.
type BusinessDayPolicy string

const (
	// PolicyNone leaves occurrences on their raw schedule-aligned dates.
	PolicyNone BusinessDayPolicy = "none"
	// PolicyNearestWeekday remaps weekend occurrences: Saturday back to
	// Friday, Sunday forward to Monday.
	PolicyNearestWeekday BusinessDayPolicy = "nearest_weekday"
	// PolicyLastBusinessDay pins every occurrence to the last weekday of its
	// month, ignoring the start date's day-of-month. Only meaningful for
	// month-stepped frequencies.
	PolicyLastBusinessDay BusinessDayPolicy = "last_business_day"
)

// ErrInvalidSchedule is returned by Validate for inconsistent configurations.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule describes one recurring obligation. The engine only ever reads it.
type Schedule struct {
	Start     Date
	End       *Date
	Frequency Frequency
	Policy    BusinessDayPolicy
}

// IsValidPolicy reports whether p is a recognized business day policy.
func IsValidPolicy(p BusinessDayPolicy) bool {
	switch p {
	case PolicyNone, PolicyNearestWeekday, PolicyLastBusinessDay:
		return true
	default:
		return false
	}
}

// Validate checks the schedule configuration. An end date must not precede the
// start date, and the last-business-day policy is only defined for
// month-stepped frequencies (combining it with a day-stepped frequency is a
// configuration error, not something to guess around).
func (s Schedule) Validate() error {
	if !s.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, s.Frequency)
	}
	if s.Policy != "" && !IsValidPolicy(s.Policy) {
		return fmt.Errorf("%w: unknown business day policy %q", ErrInvalidSchedule, s.Policy)
	}
	if s.End != nil && s.End.Before(s.Start) {
		return fmt.Errorf("%w: end date %s precedes start date %s", ErrInvalidSchedule, s.End, s.Start)
	}
	if s.Policy == PolicyLastBusinessDay && !s.Frequency.IsMonthStepped() {
		return fmt.Errorf("%w: last business day policy requires a month-stepped frequency, got %q",
			ErrInvalidSchedule, s.Frequency)
	}
	return nil
}

// Ended reports whether the schedule can produce no occurrence on or after ref,
// i.e. its end date lies strictly before ref. This is the terminal state of a
// schedule's lifecycle, not an error.
func (s Schedule) Ended(ref Date) bool {
	return s.End != nil && s.End.Before(ref)
}
