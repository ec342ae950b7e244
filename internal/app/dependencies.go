package app

import (
	"database/sql"

	"github.com/penna/penna/internal/config"
	"github.com/penna/penna/internal/event_bus"
	"github.com/penna/penna/internal/utils"
	"github.com/penna/penna/pkg/projection"
	"github.com/penna/penna/pkg/recurring"
	"github.com/penna/penna/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	RecurringPaymentRepo    recurring.Repo
	RecurringPaymentService *recurring.ServiceImpl
	RecurringPaymentHandler *recurring.Handler

	ProjectionService *projection.ServiceImpl
	IcsRenderer       *projection.IcsRendererImpl
	ProjectionHandler *projection.Handler

	EventBus *event_bus.EventBus
	Clock    utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	event_bus.SubscribeTyped[event_bus.RecurringPaymentChanged](deps.EventBus, event_bus.RecurringPaymentCreatedType,
		func(e event_bus.EventT[event_bus.RecurringPaymentChanged]) error {
			log.Debugf("recurring payment created: %s (%s %s)", e.Data.Name, e.Data.Kind, e.Data.Amount)
			return nil
		})

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.RecurringPaymentRepo = recurring.NewRepo(db)
	deps.RecurringPaymentService = recurring.NewService(deps.RecurringPaymentRepo, deps.EventBus)
	deps.RecurringPaymentHandler = recurring.NewHandler(deps.RecurringPaymentService)

	deps.ProjectionService = projection.NewService(deps.RecurringPaymentService)
	deps.IcsRenderer = projection.NewIcsRenderer()
	deps.ProjectionHandler = projection.NewHandler(deps.ProjectionService, deps.IcsRenderer, deps.Clock, cfg.Projection.DefaultDaysAhead)

	return deps
}
