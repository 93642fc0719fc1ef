package payment_gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"shop/kit/signing"
)

var ErrTimeout = errors.New("gateway timeout")
var ErrUpstream = errors.New("gateway upstream")
var ErrCircuitOpen = errors.New("circuit open")

// InvoiceRequest is the processor's hosted-payment invoice payload. Field
// order is the wire order the request is signed over.
type InvoiceRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	OrderID     string          `json:"order_id"`
	URLSuccess  string          `json:"url_success"`
	URLCallback string          `json:"url_callback"`
	Lifetime    int             `json:"lifetime"`
}

// Invoice is the parsed processor response. Raw keeps the untouched body so
// callers can return the processor payload verbatim.
type Invoice struct {
	Reference string
	Status    string
	Raw       json.RawMessage
}

type Gateway interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error)
}

type HTTPGateway struct {
	endpoint string
	merchant string
	signer   signing.Signer
	client   *http.Client
}

func NewHTTPGateway(endpoint, merchant string, signer signing.Signer, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPGateway{
		endpoint: endpoint,
		merchant: merchant,
		signer:   signer,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		log.Printf("layer=gateway component=payment_gateway method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	sign, err := g.signer.Sign(req)
	if err != nil {
		log.Printf("layer=gateway component=payment_gateway method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("merchant", g.merchant)
	httpReq.Header.Set("sign", sign)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		log.Printf("layer=gateway component=payment_gateway method=CreateInvoice order_id=%s err=%v", req.OrderID, err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("layer=gateway component=payment_gateway method=CreateInvoice order_id=%s status=%d", req.OrderID, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed struct {
		Result *struct {
			UUID          string `json:"uuid"`
			PaymentStatus string `json:"payment_status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUpstream, err)
	}
	if parsed.Result == nil || parsed.Result.UUID == "" || parsed.Result.PaymentStatus == "" {
		log.Printf("layer=gateway component=payment_gateway method=CreateInvoice order_id=%s err=invalid response", req.OrderID)
		return nil, fmt.Errorf("%w: invalid response", ErrUpstream)
	}

	return &Invoice{Reference: parsed.Result.UUID, Status: parsed.Result.PaymentStatus, Raw: raw}, nil
}

type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
	IsFailure        func(error) bool
}

type CircuitBreakerGateway struct {
	next Gateway
	cfg  CircuitBreakerConfig

	mu           sync.Mutex
	state        int
	failures     int
	successes    int
	openedAt     time.Time
	halfInFlight bool
}

const (
	cbClosed = iota
	cbOpen
	cbHalfOpen
)

func NewCircuitBreakerGateway(next Gateway, cfg CircuitBreakerConfig) *CircuitBreakerGateway {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 2 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool {
			return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUpstream) || errors.Is(err, context.DeadlineExceeded)
		}
	}
	return &CircuitBreakerGateway{next: next, cfg: cfg, state: cbClosed}
}

func (g *CircuitBreakerGateway) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	if err := g.beforeCall(); err != nil {
		return nil, err
	}

	inv, err := g.next.CreateInvoice(ctx, req)
	g.afterCall(err)
	return inv, err
}

func (g *CircuitBreakerGateway) beforeCall() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case cbClosed:
		return nil
	case cbOpen:
		if time.Since(g.openedAt) >= g.cfg.OpenTimeout {
			g.state = cbHalfOpen
			g.successes = 0
			g.halfInFlight = false
		} else {
			return ErrCircuitOpen
		}
		fallthrough
	case cbHalfOpen:
		if g.halfInFlight {
			return ErrCircuitOpen
		}
		g.halfInFlight = true
		return nil
	default:
		return ErrCircuitOpen
	}
}

func (g *CircuitBreakerGateway) afterCall(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == cbHalfOpen {
		g.halfInFlight = false
	}

	if err == nil {
		switch g.state {
		case cbClosed:
			g.failures = 0
		case cbHalfOpen:
			g.successes++
			if g.successes >= g.cfg.SuccessThreshold {
				g.state = cbClosed
				g.failures = 0
				g.successes = 0
			}
		}
		return
	}

	if !g.cfg.IsFailure(err) {
		return
	}

	switch g.state {
	case cbClosed:
		g.failures++
		if g.failures >= g.cfg.FailureThreshold {
			g.state = cbOpen
			g.openedAt = time.Now().UTC()
			g.successes = 0
			g.halfInFlight = false
		}
	case cbHalfOpen:
		g.state = cbOpen
		g.openedAt = time.Now().UTC()
		g.failures = g.cfg.FailureThreshold
		g.successes = 0
		g.halfInFlight = false
	}
}
