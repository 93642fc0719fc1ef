package payment

import "errors"

var (
	ErrInvalidInvoiceRequest = errors.New("invalid invoice request")
)

func ValidateCreateInvoiceRequest(r CreateInvoiceRequest) error {
	if r.OrderID == "" || !r.TotalAmount.IsPositive() {
		return ErrInvalidInvoiceRequest
	}
	return nil
}
