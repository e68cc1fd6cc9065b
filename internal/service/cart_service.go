package service

import (
	"errors"
	"fmt"

	"vibewear/internal/config"
	"vibewear/internal/domain"
	"vibewear/internal/session"

	"github.com/google/uuid"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrDesignNotFound   = errors.New("design not found")
	ErrInvalidVariant   = errors.New("unknown product, color, or size")
	// ErrGateRequired is surfaced when the beta gate funnels the user into
	// the waitlist instead of the cart/checkout flow.
	ErrGateRequired = errors.New("join the waitlist to continue")
)

// AddItemInput identifies a design in the session history plus the garment
// configuration to add it with.
type AddItemInput struct {
	DesignID string
	Product  string
	Color    string
	Size     string
	Quantity int
}

// CartService owns the session cart and its merge invariant: at most one
// item per (design, product, color, size) tuple.
type CartService interface {
	Add(sess *session.Session, in AddItemInput) (*domain.CartItem, error)
	UpdateQuantity(sess *session.Session, itemID string, quantity int) error
	Remove(sess *session.Session, itemID string) error
	Clear(sess *session.Session)
	Items(sess *session.Session) []domain.CartItem
	Total(sess *session.Session) float64
	Count(sess *session.Session) int
}

type cartService struct {
	pricing  config.PricingConfig
	features config.FeatureConfig
	newID    func() string
}

// NewCartService creates a new instance of CartService
func NewCartService(pricing config.PricingConfig, features config.FeatureConfig) CartService {
	return &cartService{
		pricing:  pricing,
		features: features,
		newID:    func() string { return fmt.Sprintf("cart-%s", uuid.New().String()) },
	}
}

// Add puts a configured design in the cart, merging quantities when an item
// with the same (design, product, color, size) already exists.
func (s *cartService) Add(sess *session.Session, in AddItemInput) (*domain.CartItem, error) {
	if s.features.BetaGate {
		return nil, ErrGateRequired
	}

	if !domain.ValidProduct(in.Product) || !domain.ValidColor(in.Color) || !domain.ValidSize(in.Size) {
		return nil, ErrInvalidVariant
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	design, ok := sess.DesignByID(in.DesignID)
	if !ok {
		return nil, ErrDesignNotFound
	}

	item := domain.CartItem{
		ID:             s.newID(),
		DesignID:       design.ID,
		DesignName:     design.Name,
		DesignImageURL: design.ImageURL,
		HDImageURL:     design.HDImageURL,
		Product:        in.Product,
		Color:          in.Color,
		Size:           in.Size,
		Quantity:       in.Quantity,
		UnitPrice:      s.pricing.BasePrice,
		TotalPrice:     domain.RoundCents(s.pricing.BasePrice * float64(in.Quantity)),
		Prompt:         design.Prompt,
		RevisedPrompt:  design.RevisedPrompt,
	}

	var result domain.CartItem
	sess.UpdateCart(func(items []domain.CartItem) []domain.CartItem {
		for i := range items {
			if items[i].SameVariant(item) {
				items[i].Quantity += item.Quantity
				items[i].TotalPrice = domain.RoundCents(items[i].UnitPrice * float64(items[i].Quantity))
				result = items[i]
				return items
			}
		}
		result = item
		return append(items, item)
	})

	return &result, nil
}

// UpdateQuantity sets an item's quantity, removing it when the quantity
// drops to zero or below. TotalPrice is always recomputed.
func (s *cartService) UpdateQuantity(sess *session.Session, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(sess, itemID)
	}

	found := false
	sess.UpdateCart(func(items []domain.CartItem) []domain.CartItem {
		for i := range items {
			if items[i].ID == itemID {
				items[i].Quantity = quantity
				items[i].TotalPrice = domain.RoundCents(items[i].UnitPrice * float64(quantity))
				found = true
				break
			}
		}
		return items
	})

	if !found {
		return ErrCartItemNotFound
	}
	return nil
}

// Remove deletes an item from the cart.
func (s *cartService) Remove(sess *session.Session, itemID string) error {
	found := false
	sess.UpdateCart(func(items []domain.CartItem) []domain.CartItem {
		next := items[:0]
		for _, item := range items {
			if item.ID == itemID {
				found = true
				continue
			}
			next = append(next, item)
		}
		return next
	})

	if !found {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear empties the cart.
func (s *cartService) Clear(sess *session.Session) {
	sess.UpdateCart(func(items []domain.CartItem) []domain.CartItem {
		return nil
	})
}

// Items returns a copy of the cart contents.
func (s *cartService) Items(sess *session.Session) []domain.CartItem {
	return sess.CartItems()
}

// Total sums the line totals.
func (s *cartService) Total(sess *session.Session) float64 {
	var total float64
	for _, item := range sess.CartItems() {
		total += item.TotalPrice
	}
	return domain.RoundCents(total)
}

// Count sums the quantities across all items.
func (s *cartService) Count(sess *session.Session) int {
	count := 0
	for _, item := range sess.CartItems() {
		count += item.Quantity
	}
	return count
}
