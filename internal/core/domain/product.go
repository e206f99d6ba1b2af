package domain

// Product is a catalog entry. The cart copies its display attributes
// and price at add-time.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice int64  `json:"unit_price"`
}
