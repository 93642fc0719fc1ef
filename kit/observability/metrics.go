package observability

import "sync/atomic"

type Metrics struct {
	OrdersCreated     atomic.Int64
	InvoicesCreated   atomic.Int64
	CallbacksVerified atomic.Int64
	CallbacksRejected atomic.Int64
	OrdersPaid        atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) OrdersCreatedAdd(n int64) {
	m.OrdersCreated.Add(n)
}

func (m *Metrics) InvoicesCreatedAdd(n int64) {
	m.InvoicesCreated.Add(n)
}

func (m *Metrics) CallbacksVerifiedAdd(n int64) {
	m.CallbacksVerified.Add(n)
}

func (m *Metrics) CallbacksRejectedAdd(n int64) {
	m.CallbacksRejected.Add(n)
}

func (m *Metrics) OrdersPaidAdd(n int64) {
	m.OrdersPaid.Add(n)
}
