package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// User carries the signed-in user's attribution for an order. Identity
// is established by the caller; the engine does not authenticate.
type User struct {
	ID    string
	Name  string
	Email string
}

// CheckoutDraft holds the surface-local selections for one submission
// attempt. It is never persisted.
type CheckoutDraft struct {
	DeliveryAddress string
	PaymentMethod   PaymentMethod
}

type OrderItem struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
	LineTotal int64
}

// Order is the finalized payload handed to the order-submission
// collaborator: a snapshot of the cart plus the checkout selections.
type Order struct {
	ID              string
	UserID          string
	UserName        string
	UserEmail       string
	Items           []OrderItem
	Subtotal        int64
	ServiceFee      int64
	Total           int64
	PaymentMethod   PaymentMethod
	DeliveryAddress string
	Status          OrderStatus
	CreatedAt       time.Time
}

type OrderConfirmation struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}
