package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/storefront/internal/adapter/catalog"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
)

// In-memory CartStore
type memCartStore struct {
	slots map[string]domain.Cart
}

func (m *memCartStore) Load(ctx context.Context, userID string) (domain.Cart, error) {
	return m.slots[userID].Clone(), nil
}

func (m *memCartStore) Save(ctx context.Context, userID string, cart domain.Cart) error {
	m.slots[userID] = cart.Clone()
	return nil
}

func (m *memCartStore) Delete(ctx context.Context, userID string) error {
	delete(m.slots, userID)
	return nil
}

type memOrderRepo struct {
	submitted []domain.Order
	fail      bool
}

func (m *memOrderRepo) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	if m.fail {
		return domain.OrderConfirmation{}, errors.New("backend down")
	}
	m.submitted = append(m.submitted, order)
	return domain.OrderConfirmation{OrderID: order.ID, Status: domain.OrderStatusConfirmed}, nil
}

type testServer struct {
	*httptest.Server
	store  *memCartStore
	orders *memOrderRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := &memCartStore{slots: make(map[string]domain.Cart)}
	orders := &memOrderRepo{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pricer := service.NewPricer(20)
	checkout := service.NewCheckoutService(orders, pricer, log)

	mux := http.NewServeMux()
	h := NewHTTPHandler(store, catalog.NewMemoryCatalog(catalog.DefaultMenu()), checkout, pricer, log)
	h.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: store, orders: orders}
}

func (s *testServer) do(t *testing.T, method, path string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("X-User-Name", "Sherlock")
	req.Header.Set("X-User-Email", "sherlock@bakerst.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type cartBody struct {
	Items      []domain.LineItem `json:"items"`
	ItemCount  int               `json:"item_count"`
	Subtotal   int64             `json:"subtotal"`
	ServiceFee int64             `json:"service_fee"`
	Total      int64             `json:"total"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field"`
}

func TestMissingUserHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/cart")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAddAndGetCart(t *testing.T) {
	srv := newTestServer(t)

	var cart cartBody
	resp := srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"}, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Burger", cart.Items[0].Name)
	assert.Equal(t, int64(70), cart.Total)

	// A fresh GET observes the persisted state (reload-on-mount).
	var reloaded cartBody
	srv.do(t, http.MethodGet, "/api/cart", nil, &reloaded)
	assert.Equal(t, cart, reloaded)
}

func TestAddUnknownProduct(t *testing.T) {
	srv := newTestServer(t)

	var body errorBody
	resp := srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "999"}, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "product_not_found", body.Code)
}

func TestSetQuantityAndRemove(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"}, nil)

	var cart cartBody
	srv.do(t, http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 3}, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount)

	// Driving quantity below 1 removes the row.
	srv.do(t, http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 0}, &cart)
	assert.Empty(t, cart.Items)

	resp := srv.do(t, http.MethodDelete, "/api/cart/items/1", nil, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cart.Items)
}

func TestClearCart(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"}, nil)

	var cart cartBody
	resp := srv.do(t, http.MethodDelete, "/api/cart", nil, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cart.Items)
	_, exists := srv.store.slots["user-1"]
	assert.False(t, exists, "clear must delete the slot, not write an empty value")
}

func TestCheckout_ValidationOrdering(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"}, nil)

	// Both fields missing: the response must name the address first.
	var body errorBody
	resp := srv.do(t, http.MethodPost, "/api/checkout", map[string]string{}, &body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "validation_failed", body.Code)
	assert.Equal(t, "delivery_address", body.Field)

	resp = srv.do(t, http.MethodPost, "/api/checkout", map[string]string{
		"delivery_address": "221B Baker St",
	}, &body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "payment_method", body.Field)
}

func TestCheckout_SubmissionFailure(t *testing.T) {
	srv := newTestServer(t)
	srv.orders.fail = true

	srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"}, nil)

	var body errorBody
	resp := srv.do(t, http.MethodPost, "/api/checkout", map[string]string{
		"delivery_address": "221B Baker St",
		"payment_method":   "cash",
	}, &body)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "submission_failed", body.Code)

	// The cart survives the failed submission.
	var cart cartBody
	srv.do(t, http.MethodGet, "/api/cart", nil, &cart)
	assert.Len(t, cart.Items, 1)
}

func TestCheckout_Success(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"}, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"}, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "2"}, nil)

	var conf domain.OrderConfirmation
	resp := srv.do(t, http.MethodPost, "/api/checkout", map[string]string{
		"delivery_address": "221B Baker St",
		"payment_method":   "cash",
	}, &conf)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, conf.OrderID)

	require.Len(t, srv.orders.submitted, 1)
	order := srv.orders.submitted[0]
	assert.Equal(t, int64(230), order.Total)
	assert.Equal(t, "Sherlock", order.UserName)

	var cart cartBody
	srv.do(t, http.MethodGet, "/api/cart", nil, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(20), cart.Total)
}

func TestListCatalogAndPaymentMethods(t *testing.T) {
	srv := newTestServer(t)

	var products []domain.Product
	resp := srv.do(t, http.MethodGet, "/api/catalog", nil, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, products, 8)

	var methods []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	srv.do(t, http.MethodGet, "/api/payment-methods", nil, &methods)
	require.Len(t, methods, 4)
	assert.Equal(t, "credit", methods[0].ID)
	assert.Equal(t, "Cash on Delivery", methods[2].Label)
}
