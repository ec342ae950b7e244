package schedule

import (
	log "github.com/sirupsen/logrus"
)

// maxOccurrencesPerRange bounds a single range enumeration. Together with the
// repeated-date cycle breaker it guarantees termination for any input,
// including a daily schedule with no end date queried over a multi-year range.
const maxOccurrencesPerRange = 366

// OccurrencesInRange returns every occurrence of the schedule inside
// [from, to], inclusive on both ends, in ascending order.
//
// Raw schedule-aligned dates are collected first and the nearest-weekday remap
// is applied afterwards over the whole sequence. Adjusting inside the loop
// would pull a Saturday back to Friday while the next iteration restarts from
// the Saturday and regenerates the same Friday, a stable-point cycle. After
// the remap the sequence is deduplicated and re-filtered to the window, since
// adjustment can shift a date slightly outside it.
//
// Hitting the occurrence cap or producing the same date twice truncates the
// result silently: the caller receives a valid partial sequence, and the
// boundary condition is logged rather than raised.
func (s Schedule) OccurrencesInRange(from, to Date) []Date {
	if to.Before(from) {
		return nil
	}

	// Seed and advance on raw aligned dates, without the weekend remap.
	raw := s
	if raw.Policy == PolicyNearestWeekday {
		raw.Policy = PolicyNone
	}

	var dates []Date
	seen := make(map[Date]struct{})
	cursor := from
	for {
		next, ok := raw.NextOccurrence(cursor)
		if !ok || next.After(to) {
			break
		}
		if _, dup := seen[next]; dup {
			log.Debugf("occurrence enumeration stopped on repeated date %s for schedule starting %s", next, s.Start)
			break
		}
		seen[next] = struct{}{}
		dates = append(dates, next)
		if len(dates) >= maxOccurrencesPerRange {
			log.Debugf("occurrence enumeration truncated at %d dates for schedule starting %s", maxOccurrencesPerRange, s.Start)
			break
		}
		cursor = next.AddDays(1)
	}

	if s.Policy != PolicyNearestWeekday {
		return dates
	}

	// Post-hoc weekend remap. Two distinct raw dates can coincide after
	// adjustment for short day-stepped frequencies, and an adjusted date can
	// land just outside the requested window.
	adjusted := make([]Date, 0, len(dates))
	visited := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		moved := d.NearestWeekday()
		if _, dup := visited[moved]; dup {
			continue
		}
		if moved.Before(from) || moved.After(to) {
			continue
		}
		visited[moved] = struct{}{}
		adjusted = append(adjusted, moved)
	}
	return adjusted
}
