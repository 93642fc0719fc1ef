package payment

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"shop/kit/signing"
)

// Processor statuses that settle a payment. Anything else is informational
// and only overwrites paymentResult.status.
const (
	StatusPaid     = "paid"
	StatusPaidOver = "paid_over"
)

func IsPaidStatus(status string) bool {
	return status == StatusPaid || status == StatusPaidOver
}

type CreateInvoiceRequest struct {
	TotalAmount decimal.Decimal
	OrderID     string
}

// CallbackPayload is a processor callback split into its signature and the
// remaining fields. Fields keeps the raw bytes of each value so the digest
// is recomputed over exactly what the processor sent.
type CallbackPayload struct {
	Sign   string
	Fields map[string]json.RawMessage
}

func ParseCallbackPayload(body []byte) (CallbackPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return CallbackPayload{}, err
	}
	p := CallbackPayload{Fields: fields}
	if raw, ok := fields[signing.SignField]; ok {
		_ = json.Unmarshal(raw, &p.Sign)
		delete(fields, signing.SignField)
	}
	return p, nil
}

// Field returns the string value of a callback field, or "" when absent or
// not a string.
func (p CallbackPayload) Field(name string) string {
	raw, ok := p.Fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
