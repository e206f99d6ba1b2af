package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/port"
)

// HTTPHandler is the surface glue: each request builds a fresh cart
// engine primed from the store, so every surface observes the last
// persisted state at mount and never a sibling's in-flight mirror.
type HTTPHandler struct {
	store    port.CartStore
	catalog  port.Catalog
	checkout *service.CheckoutService
	pricer   service.Pricer
	logger   *slog.Logger
}

func NewHTTPHandler(store port.CartStore, catalog port.Catalog, checkout *service.CheckoutService, pricer service.Pricer, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{
		store:    store,
		catalog:  catalog,
		checkout: checkout,
		pricer:   pricer,
		logger:   logger,
	}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/catalog", h.ListCatalog)
	mux.HandleFunc("GET /api/payment-methods", h.ListPaymentMethods)
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)
	mux.HandleFunc("POST /api/checkout", h.Checkout)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	PaymentMethod   string `json:"payment_method"`
}

type cartResponse struct {
	Items      []domain.LineItem `json:"items"`
	ItemCount  int               `json:"item_count"`
	Subtotal   int64             `json:"subtotal"`
	ServiceFee int64             `json:"service_fee"`
	Total      int64             `json:"total"`
}

type paymentMethodResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods := domain.PaymentMethods()
	out := make([]paymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, paymentMethodResponse{ID: string(m), Label: m.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.mountEngine(w, r)
	if !ok {
		return
	}
	h.writeCart(w, engine.Cart())
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.mountEngine(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		h.writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if errors.Is(err, port.ErrProductNotFound) {
		h.writeError(w, http.StatusNotFound, "product_not_found", "unknown product: "+req.ProductID)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	cart, err := engine.Add(r.Context(), product)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *HTTPHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.mountEngine(w, r)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	cart, err := engine.SetQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.mountEngine(w, r)
	if !ok {
		return
	}

	cart, err := engine.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.mountEngine(w, r)
	if !ok {
		return
	}

	cart, err := engine.Clear(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}
	engine, ok := h.mountEngineFor(w, r, user)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	draft := domain.CheckoutDraft{
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
	}

	conf, err := h.checkout.Submit(r.Context(), engine, user, draft)
	if err != nil {
		h.checkoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

// mountEngine resolves the signed-in user and primes an engine from
// the persisted slot, mirroring a surface mount.
func (h *HTTPHandler) mountEngine(w http.ResponseWriter, r *http.Request) (*service.CartEngine, bool) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return nil, false
	}
	return h.mountEngineFor(w, r, user)
}

func (h *HTTPHandler) mountEngineFor(w http.ResponseWriter, r *http.Request, user domain.User) (*service.CartEngine, bool) {
	engine := service.NewCartEngine(h.store, user.ID)
	if _, err := engine.Load(r.Context()); err != nil {
		h.storeError(w, err)
		return nil, false
	}
	return engine, true
}

// userFromRequest trusts the identity collaborator's headers. Surfaces
// are expected to gate cart pages behind a signed-in check; a missing
// user here means that gate was bypassed.
func (h *HTTPHandler) userFromRequest(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "missing X-User-ID header")
		return domain.User{}, false
	}
	return domain.User{
		ID:    userID,
		Name:  r.Header.Get("X-User-Name"),
		Email: r.Header.Get("X-User-Email"),
	}, true
}

func (h *HTTPHandler) checkoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingAddress):
		h.writeValidationError(w, "delivery_address", err)
	case errors.Is(err, service.ErrMissingPaymentMethod):
		h.writeValidationError(w, "payment_method", err)
	case errors.Is(err, service.ErrEmptyCart):
		h.writeValidationError(w, "items", err)
	case errors.Is(err, service.ErrSubmissionFailed):
		h.writeError(w, http.StatusBadGateway, "submission_failed", err.Error())
	default:
		h.storeError(w, err)
	}
}

func (h *HTTPHandler) writeValidationError(w http.ResponseWriter, field string, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: err.Error(),
		Code:  "validation_failed",
		Field: field,
	})
}

func (h *HTTPHandler) storeError(w http.ResponseWriter, err error) {
	h.logger.Error("cart store error", "error", err)
	h.writeError(w, http.StatusServiceUnavailable, "storage_unavailable", "cart storage unavailable")
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func (h *HTTPHandler) writeCart(w http.ResponseWriter, cart domain.Cart) {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	totals := h.pricer.Quote(cart)
	writeJSON(w, http.StatusOK, cartResponse{
		Items:      items,
		ItemCount:  cart.ItemCount(),
		Subtotal:   totals.Subtotal,
		ServiceFee: totals.ServiceFee,
		Total:      totals.Total,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
