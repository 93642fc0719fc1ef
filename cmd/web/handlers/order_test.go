package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"shop/cmd/web/validator"
	"shop/internal/order"
)

func neworderRepoWithInvoice(t *testing.T, ctx context.Context, orderID, reference string) *order.InMemoryRepository {
	t.Helper()
	repo := order.NewInMemoryRepository()
	require.NoError(t, repo.Save(ctx, &order.Order{
		ID:            orderID,
		TotalAmount:   decimal.RequireFromString("49.99"),
		PaymentResult: &order.PaymentResult{Reference: reference, Status: "check"},
	}))
	return repo
}

func TestOrder_Create(t *testing.T) {
	t.Run("creates unpaid order", func(t *testing.T) {
		repo := order.NewInMemoryRepository()
		h := NewOrder(validator.NewJSON(), repo, nil)

		body := `{"userId":"u1","totalAmount":49.99}`
		rr := httptest.NewRecorder()
		h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte(body))))

		require.Equal(t, http.StatusCreated, rr.Code)
		var got order.Order
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.NotEmpty(t, got.ID)
		require.False(t, got.IsPaid)
		require.True(t, got.TotalAmount.Equal(decimal.RequireFromString("49.99")))

		stored, err := repo.GetByID(context.Background(), got.ID)
		require.NoError(t, err)
		require.Equal(t, "u1", stored.UserID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		h := NewOrder(validator.NewJSON(), order.NewInMemoryRepository(), nil)

		rr := httptest.NewRecorder()
		h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte(`{"userId":"u1","totalAmount":0}`))))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		h := NewOrder(validator.NewJSON(), order.NewInMemoryRepository(), nil)

		rr := httptest.NewRecorder()
		h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte(`{`))))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOrder_Get(t *testing.T) {
	mkReq := func(orderID string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", orderID)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("found", func(t *testing.T) {
		ctx := context.Background()
		repo := neworderRepoWithInvoice(t, ctx, "abc123", "u-1")
		h := NewOrder(validator.NewJSON(), repo, nil)

		rr := httptest.NewRecorder()
		h.Get(rr, mkReq("abc123"))
		require.Equal(t, http.StatusOK, rr.Code)

		var got order.Order
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Equal(t, "abc123", got.ID)
		require.Equal(t, "u-1", got.PaymentResult.Reference)
	})

	t.Run("not found", func(t *testing.T) {
		h := NewOrder(validator.NewJSON(), order.NewInMemoryRepository(), nil)

		rr := httptest.NewRecorder()
		h.Get(rr, mkReq("missing"))
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
