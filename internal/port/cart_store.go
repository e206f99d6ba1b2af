package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

// CartStore is the persistent cart slot: one serialized cart per user,
// always replaced whole. It is owned exclusively by the cart engine.
type CartStore interface {
	// Load reads the slot. A missing slot or an unparseable payload
	// reads as an empty cart, not an error.
	Load(ctx context.Context, userID string) (domain.Cart, error)

	// Save replaces the slot with the full serialized cart.
	Save(ctx context.Context, userID string, cart domain.Cart) error

	// Delete removes the slot entirely.
	Delete(ctx context.Context, userID string) error
}
