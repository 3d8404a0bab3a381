package handlers

import (
	"payment-module/services"
	"payment-module/store"
)

// Handler bundles the services the HTTP layer fronts.
type Handler struct {
	payments     *services.PaymentService
	transactions *store.TransactionStore
	auth         *services.AuthService
}

// New creates the handler set for route registration.
func New(payments *services.PaymentService, transactions *store.TransactionStore, auth *services.AuthService) *Handler {
	return &Handler{
		payments:     payments,
		transactions: transactions,
		auth:         auth,
	}
}
