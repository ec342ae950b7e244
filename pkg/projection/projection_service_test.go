package projection

import (
	"context"
	"testing"
	"time"

	"github.com/penna/penna/pkg/recurring"
	"github.com/penna/penna/pkg/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	payments []recurring.RecurringPayment
}

func (s *stubReader) GetAll(ctx context.Context, includeInactive bool) ([]recurring.RecurringPayment, error) {
	return s.payments, nil
}

func salary() recurring.RecurringPayment {
	return recurring.RecurringPayment{
		Id:     "payment-salary",
		Name:   "Salary",
		Amount: decimal.NewFromInt(2000),
		Kind:   recurring.KindIncome,
		Schedule: schedule.Schedule{
			Start:     schedule.Date{Year: 2026, Month: time.January, Day: 2},
			Frequency: schedule.FrequencyBiweekly,
			Policy:    schedule.PolicyNone,
		},
		Active: true,
	}
}

func rent() recurring.RecurringPayment {
	return recurring.RecurringPayment{
		Id:     "payment-rent",
		Name:   "Rent",
		Amount: decimal.RequireFromString("1200.50"),
		Kind:   recurring.KindExpense,
		Schedule: schedule.Schedule{
			Start:     schedule.Date{Year: 2026, Month: time.January, Day: 1},
			Frequency: schedule.FrequencyMonthly,
			Policy:    schedule.PolicyNone,
		},
		Active: true,
	}
}

func TestServiceImpl_Upcoming(t *testing.T) {
	t.Run("should return occurrences of all active payments sorted by date", func(t *testing.T) {
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{salary(), rent()}})

		// when
		upcoming, err := service.Upcoming(context.Background(), schedule.Date{Year: 2026, Month: time.January, Day: 1}, 16)

		// then
		require.NoError(t, err)
		require.Len(t, upcoming, 3)
		assert.Equal(t, "payment-rent", upcoming[0].Payment.Id)
		assert.Equal(t, schedule.Date{Year: 2026, Month: time.January, Day: 1}, upcoming[0].Date)
		assert.Equal(t, 0, upcoming[0].DaysUntil)
		assert.Equal(t, "payment-salary", upcoming[1].Payment.Id)
		assert.Equal(t, schedule.Date{Year: 2026, Month: time.January, Day: 2}, upcoming[1].Date)
		assert.Equal(t, 1, upcoming[1].DaysUntil)
		assert.Equal(t, "payment-salary", upcoming[2].Payment.Id)
		assert.Equal(t, schedule.Date{Year: 2026, Month: time.January, Day: 16}, upcoming[2].Date)
		assert.Equal(t, 15, upcoming[2].DaysUntil)
	})

	t.Run("should skip inactive payments", func(t *testing.T) {
		inactive := rent()
		inactive.Active = false
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{inactive}})

		// when
		upcoming, err := service.Upcoming(context.Background(), schedule.Date{Year: 2026, Month: time.January, Day: 1}, 30)

		// then
		require.NoError(t, err)
		assert.Empty(t, upcoming)
	})

	t.Run("should include multiple occurrences of the same payment", func(t *testing.T) {
		daily := rent()
		daily.Schedule.Frequency = schedule.FrequencyDaily
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{daily}})

		// when
		upcoming, err := service.Upcoming(context.Background(), schedule.Date{Year: 2026, Month: time.January, Day: 1}, 6)

		// then
		require.NoError(t, err)
		assert.Len(t, upcoming, 7)
	})

	t.Run("should reject a negative horizon", func(t *testing.T) {
		service := NewService(&stubReader{})

		// when
		_, err := service.Upcoming(context.Background(), schedule.Date{Year: 2026, Month: time.January, Day: 1}, -1)

		// then
		assert.Error(t, err)
	})

	t.Run("should return an empty slice when nothing falls in the window", func(t *testing.T) {
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{rent()}})

		// when
		upcoming, err := service.Upcoming(context.Background(), schedule.Date{Year: 2026, Month: time.January, Day: 2}, 5)

		// then
		require.NoError(t, err)
		assert.Empty(t, upcoming)
	})
}

func TestServiceImpl_Monthly(t *testing.T) {
	t.Run("should sum income and expenses over the month", func(t *testing.T) {
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{salary(), rent()}})

		// when
		monthly, err := service.Monthly(context.Background(), 2026, time.January)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2026, monthly.Year)
		assert.Equal(t, time.January, monthly.Month)
		// Salary lands on Jan 2, 16 and 30; rent on Jan 1.
		require.Len(t, monthly.Occurrences, 4)
		assert.True(t, decimal.NewFromInt(6000).Equal(monthly.Income), "income was %s", monthly.Income)
		assert.True(t, decimal.RequireFromString("1200.50").Equal(monthly.Expenses), "expenses were %s", monthly.Expenses)
		assert.True(t, decimal.RequireFromString("4799.50").Equal(monthly.Net), "net was %s", monthly.Net)
	})

	t.Run("should compute DaysUntil relative to the first of the month", func(t *testing.T) {
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{salary()}})

		// when
		monthly, err := service.Monthly(context.Background(), 2026, time.January)

		// then
		require.NoError(t, err)
		require.NotEmpty(t, monthly.Occurrences)
		assert.Equal(t, 1, monthly.Occurrences[0].DaysUntil)
	})

	t.Run("should keep occurrences of unknown kinds out of the totals", func(t *testing.T) {
		broken := rent()
		broken.Kind = "transfer"
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{broken}})

		// when
		monthly, err := service.Monthly(context.Background(), 2026, time.January)

		// then
		require.NoError(t, err)
		assert.Len(t, monthly.Occurrences, 1)
		assert.True(t, monthly.Income.IsZero())
		assert.True(t, monthly.Expenses.IsZero())
		assert.True(t, monthly.Net.IsZero())
	})

	t.Run("should return zero totals for a month with no occurrences", func(t *testing.T) {
		ended := rent()
		endDate := schedule.Date{Year: 2026, Month: time.March, Day: 1}
		ended.Schedule.End = &endDate
		service := NewService(&stubReader{payments: []recurring.RecurringPayment{ended}})

		// when
		monthly, err := service.Monthly(context.Background(), 2026, time.June)

		// then
		require.NoError(t, err)
		assert.Empty(t, monthly.Occurrences)
		assert.True(t, monthly.Net.IsZero())
	})
}
