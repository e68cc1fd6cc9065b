package service

import (
	"testing"

	"vibewear/internal/config"
	"vibewear/internal/domain"
	"vibewear/internal/session"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricing() config.PricingConfig {
	return config.PricingConfig{
		BasePrice:        19.95,
		ShippingFee:      4.99,
		FreeShippingOver: 50.0,
		TaxRate:          0.08,
	}
}

func openFeatures() config.FeatureConfig {
	return config.FeatureConfig{BetaGate: false}
}

func sessionWithDesign(id string) *session.Session {
	sess := &session.Session{ID: "test-session"}
	sess.AppendDesign(domain.Design{
		ID:       id,
		Name:     "Majestic lion",
		ImageURL: "https://img.example/lion.png",
		Prompt:   "enhanced prompt",
	})
	return sess
}

func validAdd(designID string) AddItemInput {
	return AddItemInput{
		DesignID: designID,
		Product:  "Premium Cotton Tee",
		Color:    "Black",
		Size:     "M",
		Quantity: 1,
	}
}

func TestCartAdd_BetaGateBlocks(t *testing.T) {
	svc := NewCartService(testPricing(), config.FeatureConfig{BetaGate: true})
	sess := sessionWithDesign("design-1")

	_, err := svc.Add(sess, validAdd("design-1"))
	assert.ErrorIs(t, err, ErrGateRequired)
	assert.Empty(t, svc.Items(sess))
}

func TestCartAdd_NewItem(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	item, err := svc.Add(sess, validAdd("design-1"))
	require.NoError(t, err)

	assert.Equal(t, "design-1", item.DesignID)
	assert.Equal(t, "Majestic lion", item.DesignName)
	assert.Equal(t, 19.95, item.UnitPrice)
	assert.Equal(t, 19.95, item.TotalPrice)
	assert.Equal(t, 1, svc.Count(sess))
}

func TestCartAdd_MergesSameVariant(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	_, err := svc.Add(sess, validAdd("design-1"))
	require.NoError(t, err)

	merged, err := svc.Add(sess, validAdd("design-1"))
	require.NoError(t, err)

	assert.Equal(t, 2, merged.Quantity)
	assert.Equal(t, domain.RoundCents(2*19.95), merged.TotalPrice)
	assert.Len(t, svc.Items(sess), 1, "same variant must merge, not duplicate")
}

func TestCartAdd_DifferentVariantStaysSeparate(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	_, err := svc.Add(sess, validAdd("design-1"))
	require.NoError(t, err)

	other := validAdd("design-1")
	other.Size = "L"
	_, err = svc.Add(sess, other)
	require.NoError(t, err)

	assert.Len(t, svc.Items(sess), 2)
}

func TestCartAdd_UnknownDesign(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	_, err := svc.Add(sess, validAdd("design-nope"))
	assert.ErrorIs(t, err, ErrDesignNotFound)
}

func TestCartAdd_InvalidVariant(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	bad := validAdd("design-1")
	bad.Color = "Chartreuse"
	_, err := svc.Add(sess, bad)
	assert.ErrorIs(t, err, ErrInvalidVariant)

	bad = validAdd("design-1")
	bad.Product = "Premium Cotton Cape"
	_, err = svc.Add(sess, bad)
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestCartAdd_ZeroQuantityDefaultsToOne(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	in := validAdd("design-1")
	in.Quantity = 0
	item, err := svc.Add(sess, in)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartUpdateQuantity(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	item, err := svc.Add(sess, validAdd("design-1"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(sess, item.ID, 3))

	items := svc.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, domain.RoundCents(3*19.95), items[0].TotalPrice)

	// Zero quantity removes the item
	require.NoError(t, svc.UpdateQuantity(sess, item.ID, 0))
	assert.Empty(t, svc.Items(sess))

	assert.ErrorIs(t, svc.UpdateQuantity(sess, "cart-missing", 2), ErrCartItemNotFound)
}

func TestCartRemoveAndClear(t *testing.T) {
	svc := NewCartService(testPricing(), openFeatures())
	sess := sessionWithDesign("design-1")

	item, err := svc.Add(sess, validAdd("design-1"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(sess, item.ID))
	assert.Empty(t, svc.Items(sess))
	assert.ErrorIs(t, svc.Remove(sess, item.ID), ErrCartItemNotFound)

	_, err = svc.Add(sess, validAdd("design-1"))
	require.NoError(t, err)
	svc.Clear(sess)
	assert.Empty(t, svc.Items(sess))
	assert.Equal(t, 0.0, svc.Total(sess))
}

func TestProperty_CartMergeInvariant(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("at most one cart line per (design, product, color, size) tuple", prop.ForAll(
		func(adds []int) bool {
			svc := NewCartService(testPricing(), openFeatures())
			sess := sessionWithDesign("design-1")
			sess.AppendDesign(domain.Design{ID: "design-2", Name: "Second"})

			variants := []AddItemInput{
				{DesignID: "design-1", Product: "Premium Cotton Tee", Color: "Black", Size: "M"},
				{DesignID: "design-1", Product: "Premium Cotton Tee", Color: "White", Size: "M"},
				{DesignID: "design-1", Product: "Premium Cotton Sweatshirt", Color: "Black", Size: "L"},
				{DesignID: "design-2", Product: "Premium Cotton Tee", Color: "Black", Size: "M"},
			}

			expectedQty := make(map[int]int)
			for _, pick := range adds {
				idx := ((pick % len(variants)) + len(variants)) % len(variants)
				in := variants[idx]
				in.Quantity = 1
				if _, err := svc.Add(sess, in); err != nil {
					return false
				}
				expectedQty[idx]++
			}

			items := svc.Items(sess)

			// No two lines share a variant tuple
			for i := range items {
				for j := i + 1; j < len(items); j++ {
					if items[i].SameVariant(items[j]) {
						return false
					}
				}
			}

			// Quantities add up and line totals follow from them
			totalQty := 0
			for _, qty := range expectedQty {
				totalQty += qty
			}
			if svc.Count(sess) != totalQty {
				return false
			}
			for _, item := range items {
				if item.TotalPrice != domain.RoundCents(item.UnitPrice*float64(item.Quantity)) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
