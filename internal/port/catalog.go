package port

import (
	"context"
	"errors"

	"github.com/rl1809/storefront/internal/core/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog supplies product attributes, used only at add-to-cart time.
type Catalog interface {
	Product(ctx context.Context, productID string) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
