package projection

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penna/penna/pkg/schedule"
)

func TestIcsRendererImpl_RenderUpcoming(t *testing.T) {
	renderer := NewIcsRenderer()

	t.Run("should render one all-day event per occurrence", func(t *testing.T) {
		upcoming := []UpcomingPayment{
			{
				Payment:   salary(),
				Date:      schedule.Date{Year: 2026, Month: time.January, Day: 2},
				DaysUntil: 1,
			},
			{
				Payment:   salary(),
				Date:      schedule.Date{Year: 2026, Month: time.January, Day: 16},
				DaysUntil: 15,
			},
		}

		// when
		feed, err := renderer.RenderUpcoming(upcoming)

		// then
		require.NoError(t, err)
		assert.Contains(t, feed, "BEGIN:VCALENDAR")
		assert.Contains(t, feed, "END:VCALENDAR")
		assert.Equal(t, 2, strings.Count(feed, "BEGIN:VEVENT"))
		assert.Contains(t, feed, "SUMMARY:Salary")
		assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260102")
		assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260116")
		assert.Contains(t, feed, "UID:payment-salary-2026-01-02@penna")
	})

	t.Run("should render an empty calendar when there are no occurrences", func(t *testing.T) {
		// when
		feed, err := renderer.RenderUpcoming(nil)

		// then
		require.NoError(t, err)
		assert.Contains(t, feed, "BEGIN:VCALENDAR")
		assert.NotContains(t, feed, "BEGIN:VEVENT")
	})
}
