package schedule

import "errors"

// ErrUnknownFrequency is returned when a frequency outside the closed set is used.
var ErrUnknownFrequency = errors.New("unknown frequency")

// Frequency is the closed set of supported recurrence frequencies.
// Daily, weekly and biweekly step by a fixed day count; monthly, quarterly
// and yearly step by a fixed month count. The two families use different
// advancement arithmetic.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// stepDays returns the day step for day-stepped frequencies.
func (f Frequency) stepDays() (int, bool) {
	switch f {
	case FrequencyDaily:
		return 1, true
	case FrequencyWeekly:
		return 7, true
	case FrequencyBiweekly:
		return 14, true
	default:
		return 0, false
	}
}

// stepMonths returns the month step for month-stepped frequencies.
func (f Frequency) stepMonths() (int, bool) {
	switch f {
	case FrequencyMonthly:
		return 1, true
	case FrequencyQuarterly:
		return 3, true
	case FrequencyYearly:
		return 12, true
	default:
		return 0, false
	}
}

// IsMonthStepped reports whether f advances by whole calendar months.
func (f Frequency) IsMonthStepped() bool {
	_, ok := f.stepMonths()
	return ok
}

// IsValid reports whether f is one of the recognized frequencies.
func (f Frequency) IsValid() bool {
	_, dayStepped := f.stepDays()
	_, monthStepped := f.stepMonths()
	return dayStepped || monthStepped
}

// ParseFrequency validates a frequency key coming from external input.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.IsValid() {
		return "", ErrUnknownFrequency
	}
	return f, nil
}
