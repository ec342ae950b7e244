package projection

import (
	"time"

	"github.com/penna/penna/pkg/recurring"
	"github.com/penna/penna/pkg/schedule"
	"github.com/shopspring/decimal"
)

// UpcomingPayment is one projected occurrence of a recurring payment.
type UpcomingPayment struct {
	Payment recurring.RecurringPayment
	Date    schedule.Date
	// DaysUntil is the whole-day distance from the reference date; zero means
	// the payment is due on the reference date itself.
	DaysUntil int
}

// MonthlyProjection aggregates all projected occurrences of one calendar
// month into income and expense totals. Net is income minus expenses; no
// currency conversion is involved.
type MonthlyProjection struct {
	Year        int
	Month       time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	// Occurrences carry DaysUntil relative to the first day of the month,
	// not to today.
	Occurrences []UpcomingPayment
}
