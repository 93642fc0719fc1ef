package payment

import (
	"context"
	"encoding/json"

	"shop/internal/order"
	"shop/kit/payment_gateway"
)

// OrderStoreContract define order lookup/update responsibility.
type OrderStoreContract interface {
	GetByID(ctx context.Context, orderID string) (*order.Order, error)
	GetByPaymentRef(ctx context.Context, reference string) (*order.Order, error)
	Save(ctx context.Context, o *order.Order) error
}

// GatewayContract define outbound processor responsibility.
type GatewayContract interface {
	CreateInvoice(ctx context.Context, req payment_gateway.InvoiceRequest) (*payment_gateway.Invoice, error)
}

// ServiceContract define payment service responsibility.
type ServiceContract interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (json.RawMessage, error)
	HandleCallback(ctx context.Context, p CallbackPayload) error
}
