package domain

// LineItem is one distinct product held in the cart. Name, image and
// unit price are copied from the catalog when the item is first added
// and are not refreshed afterwards.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Cart is an ordered collection of line items keyed by product ID.
// Items keep their insertion order; every item has quantity >= 1.
type Cart struct {
	Items []LineItem
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the sum of quantities across all line items. Every
// surface derives its badge count from this.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Find returns the index of the line item with the given product ID,
// or -1 if the cart does not hold it.
func (c Cart) Find(productID string) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a cart whose item slice does not alias c's.
func (c Cart) Clone() Cart {
	if len(c.Items) == 0 {
		return Cart{}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
