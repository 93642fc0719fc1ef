package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop/cmd/web/validator"
	"shop/internal/order"
	"shop/kit/db"
	"shop/kit/observability"
)

type OrderStoreContract interface {
	GetByID(ctx context.Context, orderID string) (*order.Order, error)
	Save(ctx context.Context, o *order.Order) error
}

type Order struct {
	json    *validator.JSON
	store   OrderStoreContract
	metrics *observability.Metrics
}

func NewOrder(jsonV *validator.JSON, store OrderStoreContract, metrics *observability.Metrics) *Order {
	return &Order{json: jsonV, store: store, metrics: metrics}
}

type createOrderReq struct {
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := h.json.Decode(w, r, &req); err != nil {
		log.Printf("layer=handler component=order method=Create err=%v", err)
		writeError(w, http.StatusBadRequest, "invalid json", err)
		return
	}
	if !req.TotalAmount.IsPositive() {
		log.Printf("layer=handler component=order method=Create user_id=%s err=non-positive amount", req.UserID)
		writeError(w, http.StatusBadRequest, "totalAmount must be positive", nil)
		return
	}

	o := &order.Order{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		TotalAmount: req.TotalAmount,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.Save(r.Context(), o); err != nil {
		log.Printf("layer=handler component=order method=Create order_id=%s err=%v", o.ID, err)
		writeError(w, http.StatusInternalServerError, "order creation failed", err)
		return
	}
	if h.metrics != nil {
		h.metrics.OrdersCreated.Add(1)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(o); err != nil {
		log.Printf("layer=handler component=order method=Create order_id=%s err=%v", o.ID, err)
	}
}

func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id", nil)
		return
	}

	o, err := h.store.GetByID(r.Context(), orderID)
	if err != nil {
		log.Printf("layer=handler component=order method=Get order_id=%s err=%v", orderID, err)
		if db.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "order not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "order lookup failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		log.Printf("layer=handler component=order method=Get order_id=%s err=%v", orderID, err)
	}
}
