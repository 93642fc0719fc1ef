package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentResult is the processor-owned sub-record. Reference is assigned by
// the processor at invoice creation and is the only join key callbacks carry.
type PaymentResult struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentResult *PaymentResult  `json:"payment_result,omitempty"`
	IsPaid        bool            `json:"is_paid"`
	PaidAt        time.Time       `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
