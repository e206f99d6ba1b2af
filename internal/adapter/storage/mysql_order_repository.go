package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rl1809/storefront/internal/core/domain"
)

// MySQLOrderRepository archives submitted orders. The order row and
// its item rows go in one transaction; a confirmation is only returned
// once the commit succeeds.
type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (m *MySQLOrderRepository) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, user_name, user_email, subtotal, service_fee, total,
			payment_method, delivery_address, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.UserName, order.UserEmail,
		order.Subtotal, order.ServiceFee, order.Total,
		string(order.PaymentMethod), order.DeliveryAddress,
		string(domain.OrderStatusConfirmed), order.CreatedAt,
	)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, line_total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.LineTotal,
		)
		if err != nil {
			return domain.OrderConfirmation{}, fmt.Errorf("insert order item %s: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("commit order: %w", err)
	}

	return domain.OrderConfirmation{
		OrderID: order.ID,
		Status:  domain.OrderStatusConfirmed,
	}, nil
}
