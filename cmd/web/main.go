package main

import (
	"context"
	"net/http"
	"time"

	"shop/cmd/web/config"
	"shop/cmd/web/handlers"
	"shop/cmd/web/validator"
	"shop/internal/health"
	"shop/internal/order"
	"shop/internal/payment"
	"shop/kit/db"
	"shop/kit/observability"
	"shop/kit/payment_gateway"
	"shop/kit/signing"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	metricsKit := observability.NewMetrics()

	orderRepo, err := order.NewBoltRepository(cfg.DBPath)
	if err != nil {
		logger.Error("order store init error", "error", err.Error())
		return
	}
	defer func() { _ = orderRepo.Close() }()

	signer := signing.New(cfg.PaymentAPIKey)
	gateway := payment_gateway.NewCircuitBreakerGateway(
		payment_gateway.NewHTTPGateway(cfg.GatewayEndpoint, cfg.MerchantID, signer, cfg.GatewayTimeout),
		payment_gateway.CircuitBreakerConfig{
			FailureThreshold: 3,
			SuccessThreshold: 1,
			OpenTimeout:      2 * time.Second,
		},
	)

	paymentSvc := payment.NewService(orderRepo, gateway, signer, payment.Config{
		SuccessURLBase: cfg.SuccessURLBase,
		CallbackURL:    cfg.CallbackURL,
	}, metricsKit)

	healthSvc := health.NewService(2*time.Second, map[string]health.CheckFunc{
		"orders": func(ctx context.Context) error {
			_, err := orderRepo.GetByID(ctx, "__healthcheck__")
			if err != nil && !db.IsNotFound(err) {
				return err
			}
			return nil
		},
	})

	go func() {
		t := time.NewTicker(10 * time.Second)
		defer t.Stop()
		for range t.C {
			logger.Info(
				"metrics snapshot",
				"orders_created", metricsKit.OrdersCreated.Load(),
				"invoices_created", metricsKit.InvoicesCreated.Load(),
				"callbacks_verified", metricsKit.CallbacksVerified.Load(),
				"callbacks_rejected", metricsKit.CallbacksRejected.Load(),
				"orders_paid", metricsKit.OrdersPaid.Load(),
			)
		}
	}()

	jsonV := validator.NewJSON()
	orderH := handlers.NewOrder(jsonV, orderRepo, metricsKit)
	paymentH := handlers.NewPayment(jsonV, paymentSvc)
	healthH := handlers.NewHealth(healthSvc)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newRouter(cfg.APIToken, orderH, paymentH, healthH),
		ReadHeaderTimeout: 2 * time.Second,
	}

	logger.Info("web server started", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("web server error", "error", err.Error())
	}
}
