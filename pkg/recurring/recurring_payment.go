package recurring

import (
	"errors"
	"fmt"

	"github.com/penna/penna/pkg/schedule"
	"github.com/shopspring/decimal"
)

// Kind classifies a recurring payment as money coming in or going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

var ErrPaymentDataInvalid = errors.New("recurring payment data invalid")
var ErrPaymentNotFound = errors.New("recurring payment not found")

// RecurringPayment is a stored recurring obligation: rent, a subscription, a
// paycheck. The projection engine reads its Schedule; it never writes back.
type RecurringPayment struct {
	Id       string
	Name     string
	Amount   decimal.Decimal
	Kind     Kind
	Schedule schedule.Schedule
	Active   bool
}

func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// Validate checks the payment definition including its embedded schedule.
func (p RecurringPayment) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrPaymentDataInvalid)
	}
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: kind must be income or expense, got %q", ErrPaymentDataInvalid, p.Kind)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrPaymentDataInvalid, p.Amount)
	}
	if err := p.Schedule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentDataInvalid, err)
	}
	return nil
}
