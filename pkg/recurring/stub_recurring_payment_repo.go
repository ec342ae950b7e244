package recurring

import (
	"context"
	"fmt"
	"sort"
)

type StubRepo struct {
	nextId int
	data   map[string]map[string]RecurringPayment // userId -> paymentId -> payment
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[string]map[string]RecurringPayment{}}
}

func (s *StubRepo) Store(ctx context.Context, userId string, payment RecurringPayment) (string, error) {
	s.nextId++
	id := fmt.Sprintf("payment-%d", s.nextId)
	payment.Id = id
	if s.data[userId] == nil {
		s.data[userId] = map[string]RecurringPayment{}
	}
	s.data[userId][id] = payment
	return id, nil
}

func (s *StubRepo) Get(ctx context.Context, userId string, id string) (RecurringPayment, error) {
	payment, ok := s.data[userId][id]
	if !ok {
		return RecurringPayment{}, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId string, includeInactive bool) ([]RecurringPayment, error) {
	payments := make([]RecurringPayment, 0, len(s.data[userId]))
	for _, payment := range s.data[userId] {
		if !includeInactive && !payment.Active {
			continue
		}
		payments = append(payments, payment)
	}
	sort.Slice(payments, func(i, j int) bool {
		if c := payments[i].Schedule.Start.Compare(payments[j].Schedule.Start); c != 0 {
			return c < 0
		}
		return payments[i].Name < payments[j].Name
	})
	return payments, nil
}

func (s *StubRepo) Update(ctx context.Context, userId string, payment RecurringPayment) (bool, error) {
	if _, ok := s.data[userId][payment.Id]; !ok {
		return false, nil
	}
	s.data[userId][payment.Id] = payment
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId string, id string) (bool, error) {
	if _, ok := s.data[userId][id]; !ok {
		return false, nil
	}
	delete(s.data[userId], id)
	return true, nil
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[string]map[string]RecurringPayment{}
}
