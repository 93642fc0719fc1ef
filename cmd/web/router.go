package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shop/cmd/web/handlers"
)

// newRouter wires the HTTP surface. The status callback stays outside the
// auth group: the processor cannot carry user credentials, so that route is
// authenticated by payload signature alone.
func newRouter(apiToken string, orderH *handlers.Order, paymentH *handlers.Payment, healthH *handlers.Health) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthH.Handler)
	r.Post("/api/payment/status-callback", paymentH.StatusCallback)

	r.Group(func(r chi.Router) {
		r.Use(requireToken(apiToken))
		r.Post("/api/orders", orderH.Create)
		r.Get("/api/orders/{id}", orderH.Get)
		r.Post("/api/payment/create-invoice", paymentH.CreateInvoice)
	})

	return r
}

func requireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
