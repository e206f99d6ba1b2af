package service

import (
	"context"
	"fmt"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// CartEngine mirrors one user's persisted cart in memory and writes
// every mutation through to the store before it is observable. One
// engine serves one surface between mount and unmount; a sibling
// surface's writes become visible on the next Load, not before.
type CartEngine struct {
	store  port.CartStore
	userID string
	cart   domain.Cart
}

func NewCartEngine(store port.CartStore, userID string) *CartEngine {
	return &CartEngine{store: store, userID: userID}
}

// Load primes the in-memory mirror from the store. Missing or corrupt
// slots read as an empty cart at the store boundary, so Load only
// fails when the store itself is unreachable.
func (e *CartEngine) Load(ctx context.Context) (domain.Cart, error) {
	cart, err := e.store.Load(ctx, e.userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	e.cart = cart
	return e.cart.Clone(), nil
}

// Cart returns the current in-memory state without touching the store.
func (e *CartEngine) Cart() domain.Cart {
	return e.cart.Clone()
}

// Add puts one unit of the product in the cart. If a line item with
// the same ID already exists its quantity is incremented and the
// stored price and display attributes are kept — the price at
// first-add time wins over whatever the catalog says now.
func (e *CartEngine) Add(ctx context.Context, p domain.Product) (domain.Cart, error) {
	next := e.cart.Clone()
	if i := next.Find(p.ID); i >= 0 {
		next.Items[i].Quantity++
	} else {
		next.Items = append(next.Items, domain.LineItem{
			ID:        p.ID,
			Name:      p.Name,
			Image:     p.Image,
			UnitPrice: p.UnitPrice,
			Quantity:  1,
		})
	}
	return e.commit(ctx, next)
}

// SetQuantity replaces an item's quantity. A quantity below 1 removes
// the item — the cart never holds a zero-quantity line. An absent ID
// is a silent no-op.
func (e *CartEngine) SetQuantity(ctx context.Context, productID string, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return e.Remove(ctx, productID)
	}
	next := e.cart.Clone()
	if i := next.Find(productID); i >= 0 {
		next.Items[i].Quantity = quantity
	}
	return e.commit(ctx, next)
}

// Remove deletes the line item if present; idempotent otherwise.
func (e *CartEngine) Remove(ctx context.Context, productID string) (domain.Cart, error) {
	next := e.cart.Clone()
	if i := next.Find(productID); i >= 0 {
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
	}
	return e.commit(ctx, next)
}

// Clear empties the cart and deletes the slot key outright rather than
// writing an empty value.
func (e *CartEngine) Clear(ctx context.Context) (domain.Cart, error) {
	if err := e.store.Delete(ctx, e.userID); err != nil {
		return e.cart.Clone(), fmt.Errorf("clear cart: %w", err)
	}
	e.cart = domain.Cart{}
	return domain.Cart{}, nil
}

// commit writes the candidate state through and only then makes it the
// in-memory state. A failed write leaves the mirror unchanged.
func (e *CartEngine) commit(ctx context.Context, next domain.Cart) (domain.Cart, error) {
	if err := e.store.Save(ctx, e.userID, next); err != nil {
		return e.cart.Clone(), fmt.Errorf("save cart: %w", err)
	}
	e.cart = next
	return next.Clone(), nil
}
