package http

import (
	"net/http"

	"payment-module/http/handlers"
	"payment-module/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes(h *handlers.Handler) {
	// Payment APIs
	http.HandleFunc("/api/payment/create-payment", middleware.EnableCORS(h.CreatePayment))

	// Transaction dashboard APIs (operator auth required)
	http.HandleFunc("/api/transactions", middleware.EnableCORS(middleware.RequireAuth(h.ListTransactions)))
	http.HandleFunc("/api/transactions/export", middleware.EnableCORS(middleware.RequireAuth(h.ExportTransactions)))
	http.HandleFunc("/api/transactions/school/", middleware.EnableCORS(middleware.RequireAuth(h.ListTransactionsBySchool)))
	http.HandleFunc("/api/transactions/", middleware.EnableCORS(middleware.RequireAuth(h.Transaction)))
	http.HandleFunc("/api/transaction-status/", middleware.EnableCORS(middleware.RequireAuth(h.GetTransactionStatus)))

	// Dashboard auth APIs
	http.HandleFunc("/api/auth/register", middleware.EnableCORS(h.Register))
	http.HandleFunc("/api/auth/login", middleware.EnableCORS(h.Login))
}
