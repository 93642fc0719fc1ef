package payment

import "github.com/shopspring/decimal"

func ToCreateInvoiceRequest(totalAmount decimal.Decimal, orderID string) CreateInvoiceRequest {
	return CreateInvoiceRequest{TotalAmount: totalAmount, OrderID: orderID}
}
