package payment

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shop/internal/order"
	"shop/kit/payment_gateway"
)

type OrderStoreMock struct {
	mock.Mock
	OrderStoreContract
}

func (m *OrderStoreMock) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderStoreMock) GetByPaymentRef(ctx context.Context, reference string) (*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderStoreMock) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type GatewayMock struct {
	mock.Mock
	GatewayContract
}

func (m *GatewayMock) CreateInvoice(ctx context.Context, req payment_gateway.InvoiceRequest) (*payment_gateway.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment_gateway.Invoice), args.Error(1)
}
