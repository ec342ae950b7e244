package event_bus

const (
	RecurringPaymentCreatedType EventType = "recurring_payment.created"
	RecurringPaymentUpdatedType EventType = "recurring_payment.updated"
	RecurringPaymentDeletedType EventType = "recurring_payment.deleted"
)

// RecurringPaymentChanged is the payload for all recurring payment lifecycle
// events. Amount is the decimal string form to keep the bus free of domain
// package imports.
type RecurringPaymentChanged struct {
	Id        string
	Name      string
	Amount    string
	Kind      string
	Frequency string
	Active    bool
}
