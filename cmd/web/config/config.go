package config

import (
	"os"
	"time"
)

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	ListenAddr      string
	DBPath          string
	APIToken        string
	MerchantID      string
	PaymentAPIKey   string
	GatewayEndpoint string
	GatewayTimeout  time.Duration
	SuccessURLBase  string
	CallbackURL     string
}

func Load() Config {
	return Config{
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		DBPath:          getenv("DB_PATH", "./out/orders.db"),
		APIToken:        os.Getenv("API_TOKEN"),
		MerchantID:      os.Getenv("CRYPTOMUS_MERCHANT_UUID"),
		PaymentAPIKey:   os.Getenv("CRYPTOMUS_PAYMENT_API_KEY"),
		GatewayEndpoint: getenv("CRYPTOMUS_ENDPOINT", "https://api.cryptomus.com/v1/payment"),
		GatewayTimeout:  getduration("GATEWAY_TIMEOUT", 10*time.Second),
		SuccessURLBase:  getenv("SUCCESS_URL_BASE", "https://frontend-mern-ecommerce-oihi.onrender.com"),
		CallbackURL:     getenv("CALLBACK_URL", "https://backend-mern-ecommerce-86ui.onrender.com/api/payment/status-callback"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
