package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"shop/internal/health"
)

type HealthServiceContract interface {
	Check(ctx context.Context) health.Result
}

type Health struct {
	health HealthServiceContract
}

func NewHealth(healthSvc HealthServiceContract) *Health { return &Health{health: healthSvc} }

func (h *Health) Handler(w http.ResponseWriter, r *http.Request) {
	res := h.health.Check(r.Context())
	status := "up"
	code := http.StatusOK
	if !res.OK {
		status = "down"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": status, "checks": res.Checks})
}
