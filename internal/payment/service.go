package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"shop/internal/order"
	"shop/kit/db"
	"shop/kit/observability"
	"shop/kit/payment_gateway"
	"shop/kit/signing"
)

const (
	invoiceCurrency = "USD"
	// Seconds the hosted invoice stays payable.
	invoiceLifetime = 300
)

// Config is the processor-facing configuration, immutable after startup.
type Config struct {
	SuccessURLBase string
	CallbackURL    string
}

type Service struct {
	store   OrderStoreContract
	gateway GatewayContract
	signer  signing.Signer
	cfg     Config
	metrics *observability.Metrics
}

func NewService(store OrderStoreContract, gateway GatewayContract, signer signing.Signer, cfg Config, metrics *observability.Metrics) *Service {
	return &Service{store: store, gateway: gateway, signer: signer, cfg: cfg, metrics: metrics}
}

// CreateInvoice submits a hosted-payment invoice for an existing order and
// records the processor's reference on it. The order is mutated exactly once,
// after the processor call succeeds; every failure path leaves it untouched.
func (s *Service) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (json.RawMessage, error) {
	if err := ValidateCreateInvoiceRequest(req); err != nil {
		log.Printf("layer=service component=payment method=CreateInvoice order_id=%s amount=%s err=%v", req.OrderID, req.TotalAmount, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}
	if _, err := s.store.GetByID(ctx, req.OrderID); err != nil {
		log.Printf("layer=service component=payment method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
		return nil, err
	}

	invReq := payment_gateway.InvoiceRequest{
		Amount:      req.TotalAmount,
		Currency:    invoiceCurrency,
		OrderID:     req.OrderID,
		URLSuccess:  s.cfg.SuccessURLBase + "/order/" + req.OrderID,
		URLCallback: s.cfg.CallbackURL,
		Lifetime:    invoiceLifetime,
	}
	inv, err := s.gateway.CreateInvoice(ctx, invReq)
	if err != nil {
		log.Printf("layer=service component=payment method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
		return nil, err
	}

	// Re-fetch: the order can vanish between the precondition check and the
	// processor call.
	o, err := s.store.GetByID(ctx, req.OrderID)
	if err != nil {
		log.Printf("layer=service component=payment method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
		return nil, err
	}
	o.PaymentResult = &order.PaymentResult{Reference: inv.Reference, Status: inv.Status}
	if err := s.store.Save(ctx, o); err != nil {
		log.Printf("layer=service component=payment method=CreateInvoice order_id=%s reference=%s err=%v", req.OrderID, inv.Reference, err)
		return nil, errors.Join(db.ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.InvoicesCreated.Add(1)
	}
	return inv.Raw, nil
}

// HandleCallback verifies a processor status notification and applies it to
// the matching order. Authenticity rests on the signature alone; the order is
// located by the processor reference, never by id.
func (s *Service) HandleCallback(ctx context.Context, p CallbackPayload) error {
	if p.Sign == "" {
		log.Printf("layer=service component=payment method=HandleCallback err=%v", signing.ErrMissingSignature)
		if s.metrics != nil {
			s.metrics.CallbacksRejected.Add(1)
		}
		return signing.ErrMissingSignature
	}
	if err := s.signer.Verify(p.Fields, p.Sign); err != nil {
		log.Printf("layer=service component=payment method=HandleCallback err=%v", err)
		if s.metrics != nil {
			s.metrics.CallbacksRejected.Add(1)
		}
		return err
	}

	reference := p.Field("uuid")
	o, err := s.store.GetByPaymentRef(ctx, reference)
	if err != nil {
		log.Printf("layer=service component=payment method=HandleCallback reference=%s err=%v", reference, err)
		return err
	}

	status := p.Field("status")
	o.PaymentResult.Status = status
	if IsPaidStatus(status) {
		if !o.IsPaid && s.metrics != nil {
			s.metrics.OrdersPaid.Add(1)
		}
		// isPaid is one-way; paidAt tracks the latest paid delivery.
		o.IsPaid = true
		o.PaidAt = time.Now().UTC()
	}
	if err := s.store.Save(ctx, o); err != nil {
		log.Printf("layer=service component=payment method=HandleCallback order_id=%s reference=%s err=%v", o.ID, reference, err)
		return errors.Join(db.ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.CallbacksVerified.Add(1)
	}
	return nil
}
