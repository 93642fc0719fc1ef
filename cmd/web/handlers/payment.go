package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"shop/cmd/web/validator"
	"shop/internal/payment"
	"shop/kit/db"
	"shop/kit/signing"
)

type PaymentServiceContract interface {
	CreateInvoice(ctx context.Context, req payment.CreateInvoiceRequest) (json.RawMessage, error)
	HandleCallback(ctx context.Context, p payment.CallbackPayload) error
}

type Payment struct {
	json    *validator.JSON
	payment PaymentServiceContract
}

func NewPayment(jsonV *validator.JSON, paymentSvc PaymentServiceContract) *Payment {
	return &Payment{json: jsonV, payment: paymentSvc}
}

type createInvoiceReq struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderID     string          `json:"orderId"`
}

func (h *Payment) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceReq
	if err := h.json.Decode(w, r, &req); err != nil {
		log.Printf("layer=handler component=payment method=CreateInvoice err=%v", err)
		writeError(w, http.StatusBadRequest, "invalid json", err)
		return
	}

	raw, err := h.payment.CreateInvoice(r.Context(), payment.ToCreateInvoiceRequest(req.TotalAmount, req.OrderID))
	if err != nil {
		log.Printf("layer=handler component=payment method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
		switch {
		case db.IsInvalid(err):
			writeError(w, http.StatusBadRequest, "invalid invoice request", err)
		case db.IsNotFound(err):
			writeError(w, http.StatusNotFound, "order not found", err)
		default:
			writeError(w, http.StatusInternalServerError, "invoice creation failed", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(raw); err != nil {
		log.Printf("layer=handler component=payment method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
	}
}

// StatusCallback is publicly reachable; the payload signature is the only
// authentication.
func (h *Payment) StatusCallback(w http.ResponseWriter, r *http.Request) {
	body, err := h.json.ReadBody(w, r)
	if err != nil {
		log.Printf("layer=handler component=payment method=StatusCallback err=%v", err)
		writeError(w, http.StatusBadRequest, "payload is not valid", err)
		return
	}
	p, err := payment.ParseCallbackPayload(body)
	if err != nil {
		log.Printf("layer=handler component=payment method=StatusCallback err=%v", err)
		writeError(w, http.StatusBadRequest, "payload is not valid", err)
		return
	}

	if err := h.payment.HandleCallback(r.Context(), p); err != nil {
		log.Printf("layer=handler component=payment method=StatusCallback err=%v", err)
		switch {
		case errors.Is(err, signing.ErrMissingSignature):
			writeError(w, http.StatusBadRequest, "payload is not valid", err)
		case errors.Is(err, signing.ErrInvalidSignature):
			writeError(w, http.StatusBadRequest, "signature is not valid", err)
		case db.IsNotFound(err):
			writeError(w, http.StatusNotFound, "order not found", err)
		default:
			writeError(w, http.StatusInternalServerError, "callback processing failed", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		log.Printf("layer=handler component=payment method=writeError err=%v", encErr)
	}
}
