package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibewear/internal/config"
	"vibewear/internal/domain"
	"vibewear/internal/session"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutForm is the buyer's contact and shipping details. Field validation
// happens at the transport layer; the service only needs the shape.
type CheckoutForm struct {
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	ShippingAddress ShippingAddress
}

type ShippingAddress struct {
	Address1 string
	Address2 string
	City     string
	State    string
	ZipCode  string
	Country  string
}

// Order is the confirmation produced by the simulated checkout.
type Order struct {
	OrderNumber string              `json:"orderNumber"`
	Summary     domain.OrderSummary `json:"summary"`
	Items       []domain.CartItem   `json:"items"`
	PlacedAt    time.Time           `json:"placedAt"`
}

// CheckoutService derives order totals from the cart and runs the simulated
// payment step. No payment processor is wired up; the step only takes time.
type CheckoutService interface {
	Summarize(items []domain.CartItem) domain.OrderSummary
	Checkout(ctx context.Context, sess *session.Session, form CheckoutForm) (*Order, error)
}

type checkoutService struct {
	pricing      config.PricingConfig
	features     config.FeatureConfig
	paymentDelay time.Duration
	now          func() time.Time
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(pricing config.PricingConfig, features config.FeatureConfig, paymentDelay time.Duration) CheckoutService {
	return &checkoutService{
		pricing:      pricing,
		features:     features,
		paymentDelay: paymentDelay,
		now:          time.Now,
	}
}

// Summarize recomputes the order summary from the cart. It is never cached;
// every caller derives it fresh so the components always add up.
func (s *checkoutService) Summarize(items []domain.CartItem) domain.OrderSummary {
	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	subtotal = domain.RoundCents(subtotal)

	shipping := s.pricing.ShippingFee
	if subtotal > s.pricing.FreeShippingOver {
		shipping = 0
	}

	tax := domain.RoundCents(subtotal * s.pricing.TaxRate)

	return domain.OrderSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    domain.RoundCents(subtotal + shipping + tax),
	}
}

// Checkout runs the simulated payment and clears the cart on success.
func (s *checkoutService) Checkout(ctx context.Context, sess *session.Session, form CheckoutForm) (*Order, error) {
	if s.features.BetaGate {
		return nil, ErrGateRequired
	}

	items := sess.CartItems()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	summary := s.Summarize(items)

	if err := s.simulatePayment(ctx); err != nil {
		return nil, err
	}

	order := &Order{
		OrderNumber: s.orderNumber(),
		Summary:     summary,
		Items:       items,
		PlacedAt:    s.now(),
	}

	sess.UpdateCart(func([]domain.CartItem) []domain.CartItem {
		return nil
	})

	return order, nil
}

// simulatePayment stands in for the payment processor round trip.
func (s *checkoutService) simulatePayment(ctx context.Context) error {
	if s.paymentDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.paymentDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// orderNumber builds the VW-prefixed time-derived order number.
func (s *checkoutService) orderNumber() string {
	ms := fmt.Sprintf("%d", s.now().UnixMilli())
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "VW" + ms
}
