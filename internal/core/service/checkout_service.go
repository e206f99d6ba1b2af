package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

var (
	ErrMissingAddress       = errors.New("delivery address required")
	ErrMissingPaymentMethod = errors.New("payment method required")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrSubmissionFailed     = errors.New("order submission failed")
)

type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateRejected
	StateAccepted
)

// Validator gates order submission. Preconditions run in fixed order
// with short-circuit: delivery address, then payment method, then a
// non-empty cart. The first failure is the rejection reason.
type Validator struct {
	state  CheckoutState
	reason error
}

func (v *Validator) State() CheckoutState { return v.state }
func (v *Validator) Reason() error        { return v.reason }

// Check resets the validator to Idle and runs the preconditions.
func (v *Validator) Check(cart domain.Cart, draft domain.CheckoutDraft) error {
	v.state, v.reason = StateIdle, nil

	if draft.DeliveryAddress == "" {
		return v.reject(ErrMissingAddress)
	}
	if !draft.PaymentMethod.Valid() {
		return v.reject(ErrMissingPaymentMethod)
	}
	if cart.IsEmpty() {
		return v.reject(ErrEmptyCart)
	}

	v.state = StateAccepted
	return nil
}

func (v *Validator) reject(reason error) error {
	v.state, v.reason = StateRejected, reason
	return reason
}

// CartSession is the slice of the cart engine checkout needs: the
// current state to snapshot and a clear to run after acceptance.
type CartSession interface {
	Cart() domain.Cart
	Clear(ctx context.Context) (domain.Cart, error)
}

// CheckoutService validates a submission attempt, builds the finalized
// order payload and hands it to the order repository. The cart is
// cleared exactly once, and only after the repository confirms.
type CheckoutService struct {
	orders port.OrderRepository
	pricer Pricer
	logger *slog.Logger
	now    func() time.Time
}

func NewCheckoutService(orders port.OrderRepository, pricer Pricer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		orders: orders,
		pricer: pricer,
		logger: logger,
		now:    time.Now,
	}
}

func (s *CheckoutService) Submit(ctx context.Context, session CartSession, user domain.User, draft domain.CheckoutDraft) (domain.OrderConfirmation, error) {
	var v Validator
	cart := session.Cart()
	if err := v.Check(cart, draft); err != nil {
		return domain.OrderConfirmation{}, err
	}

	order := s.buildOrder(cart, user, draft)
	conf, err := s.orders.SubmitOrder(ctx, order)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	// Order is durably accepted at this point. A failed clear leaves a
	// stale slot behind but must not fail the submission.
	if _, err := session.Clear(ctx); err != nil {
		s.logger.Warn("cart clear after checkout failed",
			"user_id", user.ID, "order_id", conf.OrderID, "error", err)
	}

	s.logger.Info("order placed",
		"user_id", user.ID, "order_id", conf.OrderID,
		"total", order.Total, "payment_method", string(order.PaymentMethod))
	return conf, nil
}

func (s *CheckoutService) buildOrder(cart domain.Cart, user domain.User, draft domain.CheckoutDraft) domain.Order {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, li := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: li.ID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			LineTotal: li.UnitPrice * int64(li.Quantity),
		})
	}
	totals := s.pricer.Quote(cart)

	return domain.Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		Items:           items,
		Subtotal:        totals.Subtotal,
		ServiceFee:      totals.ServiceFee,
		Total:           totals.Total,
		PaymentMethod:   draft.PaymentMethod,
		DeliveryAddress: draft.DeliveryAddress,
		Status:          domain.OrderStatusPending,
		CreatedAt:       s.now(),
	}
}
