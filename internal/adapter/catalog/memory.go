package catalog

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// MemoryCatalog serves a fixed product list. The menu is static in
// current scope; a real listing backend would slot in behind the same
// port.
type MemoryCatalog struct {
	items []domain.Product
	byID  map[string]domain.Product
}

func NewMemoryCatalog(items []domain.Product) *MemoryCatalog {
	byID := make(map[string]domain.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	return &MemoryCatalog{items: items, byID: byID}
}

// DefaultMenu is the storefront's menu.
func DefaultMenu() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Burger", Image: "/burger.png", UnitPrice: 50},
		{ID: "2", Name: "Pizza", Image: "/pizza.png", UnitPrice: 80},
		{ID: "3", Name: "Ice Cream", Image: "/icecream.png", UnitPrice: 30},
		{ID: "4", Name: "Chinese", Image: "/chinese.png", UnitPrice: 70},
		{ID: "5", Name: "Rolls", Image: "/rolls.png", UnitPrice: 60},
		{ID: "6", Name: "Cake", Image: "/cake.png", UnitPrice: 400},
		{ID: "7", Name: "Momos", Image: "/momo.png", UnitPrice: 50},
		{ID: "8", Name: "Sandwich", Image: "/sandwich.png", UnitPrice: 40},
	}
}

func (c *MemoryCatalog) Product(ctx context.Context, productID string) (domain.Product, error) {
	p, ok := c.byID[productID]
	if !ok {
		return domain.Product{}, port.ErrProductNotFound
	}
	return p, nil
}

func (c *MemoryCatalog) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(c.items))
	copy(out, c.items)
	return out, nil
}
