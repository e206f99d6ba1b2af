package service

import "github.com/rl1809/storefront/internal/core/domain"

// Totals is the derived price view of a cart. It is recomputed on
// every observation and never stored.
type Totals struct {
	Subtotal   int64 `json:"subtotal"`
	ServiceFee int64 `json:"service_fee"`
	Total      int64 `json:"total"`
}

// Pricer derives totals from a cart. The service fee is a flat
// configured amount added to every order regardless of size.
type Pricer struct {
	serviceFee int64
}

func NewPricer(serviceFee int64) Pricer {
	return Pricer{serviceFee: serviceFee}
}

func (p Pricer) Quote(cart domain.Cart) Totals {
	var subtotal int64
	for _, item := range cart.Items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return Totals{
		Subtotal:   subtotal,
		ServiceFee: p.serviceFee,
		Total:      subtotal + p.serviceFee,
	}
}
