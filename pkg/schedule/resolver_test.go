package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(d Date) *Date {
	return &d
}

func TestSchedule_NextOccurrence_DayStepped(t *testing.T) {
	t.Run("should return the start date when asked from before the start", func(t *testing.T) {
		// given
		s := Schedule{Start: Date{2026, time.March, 15}, Frequency: FrequencyWeekly}

		// when
		next, ok := s.NextOccurrence(Date{2026, time.January, 1})

		// then
		require.True(t, ok)
		assert.Equal(t, Date{2026, time.March, 15}, next)
	})

	t.Run("should include an occurrence falling exactly on the reference date", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.January, 2}, Frequency: FrequencyWeekly}

		next, ok := s.NextOccurrence(Date{2026, time.January, 16})

		require.True(t, ok)
		assert.Equal(t, Date{2026, time.January, 16}, next)
	})

	t.Run("should find the smallest aligned date on or after the reference", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.January, 2}, Frequency: FrequencyBiweekly}

		next, ok := s.NextOccurrence(Date{2026, time.January, 20})

		require.True(t, ok)
		assert.Equal(t, Date{2026, time.January, 30}, next)
	})

	t.Run("should step daily schedules by single days", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.January, 1}, Frequency: FrequencyDaily}

		next, ok := s.NextOccurrence(Date{2026, time.June, 17})

		require.True(t, ok)
		assert.Equal(t, Date{2026, time.June, 17}, next)
	})

	t.Run("should be idempotent when re-resolved from its own result", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.January, 2}, Frequency: FrequencyWeekly}
		from := Date{2026, time.January, 1}

		for i := 0; i < 10; i++ {
			next, ok := s.NextOccurrence(from)
			require.True(t, ok)
			again, ok := s.NextOccurrence(next)
			require.True(t, ok)
			assert.Equal(t, next, again)
			from = next.AddDays(1)
		}
	})
}

func TestSchedule_NextOccurrence_MonthStepped(t *testing.T) {
	t.Run("should clamp to the last day of shorter months, anchored on the start day", func(t *testing.T) {
		// given a schedule anchored on the 31st
		s := Schedule{Start: Date{2026, time.January, 31}, Frequency: FrequencyMonthly}

		// then February clamps but March recovers the 31st
		next, ok := s.NextOccurrence(Date{2026, time.February, 1})
		require.True(t, ok)
		assert.Equal(t, Date{2026, time.February, 28}, next)

		next, ok = s.NextOccurrence(Date{2026, time.March, 1})
		require.True(t, ok)
		assert.Equal(t, Date{2026, time.March, 31}, next)

		next, ok = s.NextOccurrence(Date{2026, time.April, 1})
		require.True(t, ok)
		assert.Equal(t, Date{2026, time.April, 30}, next)
	})

	t.Run("should step quarterly schedules by three months", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.January, 15}, Frequency: FrequencyQuarterly}

		next, ok := s.NextOccurrence(Date{2026, time.February, 1})

		require.True(t, ok)
		assert.Equal(t, Date{2026, time.April, 15}, next)
	})

	t.Run("should step yearly schedules by twelve months", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.July, 4}, Frequency: FrequencyYearly}

		next, ok := s.NextOccurrence(Date{2026, time.August, 1})

		require.True(t, ok)
		assert.Equal(t, Date{2027, time.July, 4}, next)
	})
}

func TestSchedule_NextOccurrence_LastBusinessDay(t *testing.T) {
	t.Run("should pin the occurrence to the last weekday of the month", func(t *testing.T) {
		// given May 31, 2026 is a Sunday
		s := Schedule{
			Start:     Date{2026, time.January, 1},
			Frequency: FrequencyMonthly,
			Policy:    PolicyLastBusinessDay,
		}

		// when
		next, ok := s.NextOccurrence(Date{2026, time.May, 1})

		// then
		require.True(t, ok)
		assert.Equal(t, Date{2026, time.May, 29}, next)
		assert.Equal(t, time.Friday, next.Weekday())
	})

	t.Run("should advance a full period when the month's last business day already passed", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.January, 1},
			Frequency: FrequencyMonthly,
			Policy:    PolicyLastBusinessDay,
		}

		// Jan 30 is the last business day of January 2026 (the 31st is a Saturday)
		next, ok := s.NextOccurrence(Date{2026, time.January, 31})

		require.True(t, ok)
		assert.Equal(t, Date{2026, time.February, 27}, next)
	})

	t.Run("should follow the quarterly cadence counted from the start month", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.January, 15},
			Frequency: FrequencyQuarterly,
			Policy:    PolicyLastBusinessDay,
		}

		next, ok := s.NextOccurrence(Date{2026, time.February, 1})

		require.True(t, ok)
		// April 30, 2026 is a Thursday
		assert.Equal(t, Date{2026, time.April, 30}, next)
	})

	t.Run("should yield nothing when combined with a day-stepped frequency", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.January, 1},
			Frequency: FrequencyWeekly,
			Policy:    PolicyLastBusinessDay,
		}

		_, ok := s.NextOccurrence(Date{2026, time.January, 1})

		assert.False(t, ok)
	})
}

func TestSchedule_NextOccurrence_EndDate(t *testing.T) {
	t.Run("should return nothing once the end date is passed", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.January, 2},
			End:       datePtr(Date{2026, time.January, 16}),
			Frequency: FrequencyWeekly,
		}

		_, ok := s.NextOccurrence(Date{2026, time.January, 17})

		assert.False(t, ok)
	})

	t.Run("should still return an occurrence landing exactly on the end date", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.January, 2},
			End:       datePtr(Date{2026, time.January, 16}),
			Frequency: FrequencyWeekly,
		}

		next, ok := s.NextOccurrence(Date{2026, time.January, 10})

		require.True(t, ok)
		assert.Equal(t, Date{2026, time.January, 16}, next)
	})

	t.Run("should return nothing for any reference date after the end date", func(t *testing.T) {
		end := Date{2026, time.June, 30}
		s := Schedule{
			Start:     Date{2026, time.January, 1},
			End:       &end,
			Frequency: FrequencyDaily,
		}

		for _, from := range []Date{end.AddDays(1), end.AddDays(30), {2030, time.January, 1}} {
			_, ok := s.NextOccurrence(from)
			assert.False(t, ok, "from %s", from)
		}
	})
}

func TestSchedule_NextOccurrence_NearestWeekday(t *testing.T) {
	t.Run("should remap a Saturday occurrence back to Friday", func(t *testing.T) {
		// given a weekly schedule aligned on Saturdays
		s := Schedule{
			Start:     Date{2026, time.January, 3},
			Frequency: FrequencyWeekly,
			Policy:    PolicyNearestWeekday,
		}

		// when
		next, ok := s.NextOccurrence(Date{2026, time.January, 5})

		// then the aligned Jan 10 Saturday lands on Jan 9 Friday
		require.True(t, ok)
		assert.Equal(t, Date{2026, time.January, 9}, next)
	})

	t.Run("should apply the remap before the end date check", func(t *testing.T) {
		// The aligned date is one past the end, but the Saturday remap pulls
		// it back inside.
		s := Schedule{
			Start:     Date{2026, time.January, 3},
			End:       datePtr(Date{2026, time.January, 9}),
			Frequency: FrequencyWeekly,
			Policy:    PolicyNearestWeekday,
		}

		next, ok := s.NextOccurrence(Date{2026, time.January, 5})

		require.True(t, ok)
		assert.Equal(t, Date{2026, time.January, 9}, next)
	})
}

func TestSchedule_NextOccurrence_UnknownFrequency(t *testing.T) {
	t.Run("should yield nothing instead of failing", func(t *testing.T) {
		// One malformed schedule must not blank out a whole projection.
		s := Schedule{Start: Date{2026, time.January, 1}, Frequency: "fortnightly-ish"}

		_, ok := s.NextOccurrence(Date{2026, time.January, 1})

		assert.False(t, ok)
	})
}

func TestSchedule_Validate(t *testing.T) {
	t.Run("should accept a minimal valid schedule", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.January, 1}, Frequency: FrequencyMonthly}
		assert.NoError(t, s.Validate())
	})

	t.Run("should reject an unknown frequency", func(t *testing.T) {
		s := Schedule{Start: Date{2026, time.January, 1}, Frequency: "hourly"}
		assert.ErrorIs(t, s.Validate(), ErrUnknownFrequency)
	})

	t.Run("should reject an end date before the start date", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.June, 1},
			End:       datePtr(Date{2026, time.January, 1}),
			Frequency: FrequencyMonthly,
		}
		assert.ErrorIs(t, s.Validate(), ErrInvalidSchedule)
	})

	t.Run("should reject last business day policy on day-stepped frequencies", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.January, 1},
			Frequency: FrequencyBiweekly,
			Policy:    PolicyLastBusinessDay,
		}
		assert.ErrorIs(t, s.Validate(), ErrInvalidSchedule)
	})

	t.Run("should reject an unrecognized policy", func(t *testing.T) {
		s := Schedule{
			Start:     Date{2026, time.January, 1},
			Frequency: FrequencyMonthly,
			Policy:    "closest_holiday",
		}
		assert.ErrorIs(t, s.Validate(), ErrInvalidSchedule)
	})
}
