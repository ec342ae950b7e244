package app

import (
	"github.com/gorilla/mux"
	"github.com/penna/penna/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Recurring payments
	r.HandleFunc("/api/recurring", deps.RecurringPaymentHandler.Register).Methods("POST")
	r.HandleFunc("/api/recurring", deps.RecurringPaymentHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/recurring/{id}", deps.RecurringPaymentHandler.Get).Methods("GET")
	r.HandleFunc("/api/recurring/{id}", deps.RecurringPaymentHandler.Update).Methods("PUT")
	r.HandleFunc("/api/recurring/{id}", deps.RecurringPaymentHandler.Delete).Methods("DELETE")

	// Projection
	r.HandleFunc("/api/projection/upcoming", deps.ProjectionHandler.GetUpcoming).Methods("GET")
	r.HandleFunc("/api/projection/upcoming/ics", deps.ProjectionHandler.GetUpcomingIcs).Methods("GET")
	r.HandleFunc("/api/projection/monthly", deps.ProjectionHandler.GetMonthly).Queries("month", "{month}").Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")
}
