package recurring

import (
	"context"
	"fmt"

	"github.com/penna/penna/internal/event_bus"
	"github.com/penna/penna/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, payment RecurringPayment) (RecurringPayment, error)
	Get(ctx context.Context, id string) (RecurringPayment, error)
	GetAll(ctx context.Context, includeInactive bool) ([]RecurringPayment, error)
	Update(ctx context.Context, payment RecurringPayment) (RecurringPayment, error)
	Delete(ctx context.Context, id string) error
}

// Reader is the narrow view the projection service depends on.
type Reader interface {
	GetAll(ctx context.Context, includeInactive bool) ([]RecurringPayment, error)
}

type ServiceImpl struct {
	repo     Repo
	eventBus *event_bus.EventBus
}

func NewService(repo Repo, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, payment RecurringPayment) (RecurringPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return RecurringPayment{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := payment.Validate(); err != nil {
		return RecurringPayment{}, err
	}

	id, err := s.repo.Store(ctx, userId, payment)
	if err != nil {
		return RecurringPayment{}, err
	}
	payment.Id = id

	s.publish(ctx, event_bus.RecurringPaymentCreatedType, payment)
	return payment, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (RecurringPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return RecurringPayment{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeInactive bool) ([]RecurringPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, includeInactive)
}

func (s *ServiceImpl) Update(ctx context.Context, payment RecurringPayment) (RecurringPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return RecurringPayment{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := payment.Validate(); err != nil {
		return RecurringPayment{}, err
	}

	updated, err := s.repo.Update(ctx, userId, payment)
	if err != nil {
		return RecurringPayment{}, err
	}
	if !updated {
		log.Warnf("recurring payment not updated, probably because it does not exist (%s) or the user (%s) is not the owner", payment.Id, userId)
		return RecurringPayment{}, ErrPaymentNotFound
	}

	s.publish(ctx, event_bus.RecurringPaymentUpdatedType, payment)
	return payment, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("recurring payment not deleted, probably because it does not exist (%s) or the user (%s) is not the owner", id, userId)
		return ErrPaymentNotFound
	}

	s.publish(ctx, event_bus.RecurringPaymentDeletedType, RecurringPayment{Id: id})
	return nil
}

// publish emits a lifecycle event. Event delivery is best effort: projections
// are recomputed from the repository on every read, so a dropped event cannot
// leave aggregates stale.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, payment RecurringPayment) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.RecurringPaymentChanged{
		Id:        payment.Id,
		Name:      payment.Name,
		Amount:    payment.Amount.String(),
		Kind:      string(payment.Kind),
		Frequency: string(payment.Schedule.Frequency),
		Active:    payment.Active,
	}))
	if err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
