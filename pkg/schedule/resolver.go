package schedule

// NextOccurrence returns the first occurrence of the schedule on or after
// from. A schedule never produces an occurrence earlier than its start date,
// and a date equal to from counts as the next occurrence (a payment due today
// is still upcoming today).
//
// The second return value is false when the schedule has no further
// occurrence: the computed date falls past the end date, or the configuration
// is outside the closed frequency set. A malformed schedule deliberately
// yields no occurrences instead of an error so that one bad record cannot
// blank out a whole aggregate projection.
func (s Schedule) NextOccurrence(from Date) (Date, bool) {
	next, ok := s.nextAligned(from)
	if !ok {
		return Date{}, false
	}
	if s.Policy == PolicyNearestWeekday {
		next = next.NearestWeekday()
	}
	if s.End != nil && next.After(*s.End) {
		return Date{}, false
	}
	return next, true
}

// nextAligned computes the raw schedule-aligned occurrence on or after from,
// without the nearest-weekday remap. Last-business-day occurrences are final
// by construction and need no further adjustment.
func (s Schedule) nextAligned(from Date) (Date, bool) {
	if s.Policy == PolicyLastBusinessDay {
		return s.nextLastBusinessDay(from)
	}

	if !s.Start.Before(from) {
		return s.Start, true
	}

	if step, ok := s.Frequency.stepDays(); ok {
		// Exact day counts, never month-sensitive arithmetic: the result is
		// the smallest schedule-aligned date >= from.
		periods := DaysBetween(s.Start, from) / step
		next := s.Start.AddDays(periods * step)
		if next.Before(from) {
			next = next.AddDays(step)
		}
		return next, true
	}

	if step, ok := s.Frequency.stepMonths(); ok {
		// Month advancement is always anchored on the start date so the
		// day-of-month clamp cannot drift: Jan 31 monthly yields Feb 28/29,
		// then Mar 31 again.
		periods := monthsBetween(s.Start, from) / step
		next := s.Start.addMonthsClamped(periods * step)
		if next.Before(from) {
			next = s.Start.addMonthsClamped((periods + 1) * step)
		}
		return next, true
	}

	return Date{}, false
}

// nextLastBusinessDay resolves schedules pinned to the last business day of
// their month. The start date's day-of-month is ignored entirely; only the
// month-step cadence counted from the start month matters.
func (s Schedule) nextLastBusinessDay(from Date) (Date, bool) {
	step, ok := s.Frequency.stepMonths()
	if !ok {
		// Undefined combination with a day-stepped frequency: refuse to guess.
		return Date{}, false
	}
	months := monthsBetween(s.Start, from)
	if months < 0 {
		months = 0
	}
	periods := months / step
	target := s.Start.addMonthsClamped(periods * step)
	next := LastBusinessDayOfMonth(target.Year, target.Month)
	if next.Before(from) {
		target = s.Start.addMonthsClamped((periods + 1) * step)
		next = LastBusinessDayOfMonth(target.Year, target.Month)
	}
	return next, true
}
