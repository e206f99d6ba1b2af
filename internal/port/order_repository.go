package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

// OrderRepository is the order-submission collaborator. Submit either
// durably accepts the order and returns a confirmation, or returns an
// error — in which case the caller must leave the cart untouched.
type OrderRepository interface {
	SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error)
}
