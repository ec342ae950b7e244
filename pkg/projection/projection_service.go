package projection

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/penna/penna/pkg/recurring"
	"github.com/penna/penna/pkg/schedule"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Service computes projections over the current user's recurring payments.
// The reference date is always an explicit argument: the service never reads
// the wall clock, which keeps projections deterministic and testable.
type Service interface {
	Upcoming(ctx context.Context, from schedule.Date, daysAhead int) ([]UpcomingPayment, error)
	Monthly(ctx context.Context, year int, month time.Month) (MonthlyProjection, error)
}

type ServiceImpl struct {
	payments recurring.Reader
}

func NewService(payments recurring.Reader) *ServiceImpl {
	return &ServiceImpl{payments: payments}
}

// Upcoming enumerates every occurrence of the user's active payments in
// [from, from+daysAhead], flattened across payments and sorted by date.
func (s *ServiceImpl) Upcoming(ctx context.Context, from schedule.Date, daysAhead int) ([]UpcomingPayment, error) {
	if daysAhead < 0 {
		return nil, fmt.Errorf("daysAhead must not be negative, got %d", daysAhead)
	}
	payments, err := s.payments.GetAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring payments: %w", err)
	}
	to := from.AddDays(daysAhead)

	upcoming := collectOccurrences(payments, from, to, from)
	sortByDate(upcoming)
	return upcoming, nil
}

// Monthly sums the month's projected occurrences into income and expense
// totals. Occurrences carry DaysUntil relative to the first day of the month.
func (s *ServiceImpl) Monthly(ctx context.Context, year int, month time.Month) (MonthlyProjection, error) {
	payments, err := s.payments.GetAll(ctx, false)
	if err != nil {
		return MonthlyProjection{}, fmt.Errorf("failed to load recurring payments: %w", err)
	}

	first := schedule.Date{Year: year, Month: month, Day: 1}
	last := schedule.LastDayOfMonth(year, month)

	occurrences := collectOccurrences(payments, first, last, first)
	sortByDate(occurrences)

	result := MonthlyProjection{
		Year:        year,
		Month:       month,
		Income:      decimal.Zero,
		Expenses:    decimal.Zero,
		Occurrences: occurrences,
	}
	for _, occ := range occurrences {
		switch occ.Payment.Kind {
		case recurring.KindIncome:
			result.Income = result.Income.Add(occ.Payment.Amount)
		case recurring.KindExpense:
			result.Expenses = result.Expenses.Add(occ.Payment.Amount)
		default:
			// Unknown kinds are skipped, the same policy as unknown
			// frequencies: one malformed record must not poison the totals.
			log.Warnf("skipping occurrence of payment %s with unknown kind %q", occ.Payment.Id, occ.Payment.Kind)
		}
	}
	result.Net = result.Income.Sub(result.Expenses)
	return result, nil
}

func collectOccurrences(payments []recurring.RecurringPayment, from, to, ref schedule.Date) []UpcomingPayment {
	collected := make([]UpcomingPayment, 0)
	for _, payment := range payments {
		if !payment.Active {
			continue
		}
		for _, date := range payment.Schedule.OccurrencesInRange(from, to) {
			collected = append(collected, UpcomingPayment{
				Payment:   payment,
				Date:      date,
				DaysUntil: schedule.DaysBetween(ref, date),
			})
		}
	}
	return collected
}

func sortByDate(occurrences []UpcomingPayment) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Date.Before(occurrences[j].Date)
	})
}
