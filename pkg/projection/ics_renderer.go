package projection

import (
	"fmt"

	ical "github.com/arran4/golang-ical"
)

type IcsRendererImpl struct {
}

func NewIcsRenderer() *IcsRendererImpl {
	return &IcsRendererImpl{}
}

// RenderUpcoming produces an iCalendar feed with one all-day event per
// projected occurrence, so users can subscribe to upcoming payments from
// their calendar app.
func (r *IcsRendererImpl) RenderUpcoming(upcoming []UpcomingPayment) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Penna//Payment Projection//EN")

	for _, occurrence := range upcoming {
		uid := fmt.Sprintf("%s-%s@penna", occurrence.Payment.Id, occurrence.Date)
		event := cal.AddEvent(uid)
		event.SetAllDayStartAt(occurrence.Date.Time())
		event.SetAllDayEndAt(occurrence.Date.AddDays(1).Time())
		event.SetSummary(occurrence.Payment.Name)
		event.SetDescription(fmt.Sprintf("%s of %s", occurrence.Payment.Kind, occurrence.Payment.Amount.StringFixed(2)))
	}
	return cal.Serialize(), nil
}
