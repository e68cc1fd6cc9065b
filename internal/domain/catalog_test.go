package domain

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCatalogValidation(t *testing.T) {
	assert.True(t, ValidProduct("Premium Cotton Tee"))
	assert.True(t, ValidProduct("Premium Lightweight Hoodie"))
	assert.False(t, ValidProduct("Premium Cotton Cape"))

	assert.True(t, ValidColor("White"))
	assert.True(t, ValidColor("Black"))
	assert.False(t, ValidColor("white"), "catalog matching is exact")

	assert.True(t, ValidSize("M"))
	assert.True(t, ValidSize("XXXL"))
	assert.False(t, ValidSize("XS/S"))
}

func TestDefaultProductConfig(t *testing.T) {
	cfg := DefaultProductConfig()
	assert.True(t, ValidProduct(cfg.Product))
	assert.True(t, ValidColor(cfg.Color))
	assert.True(t, ValidSize(cfg.Size))
	assert.Equal(t, 1, cfg.Amount)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 19.95, RoundCents(19.95))
	assert.Equal(t, 39.9, RoundCents(19.95*2))
	assert.Equal(t, 3.19, RoundCents(39.9*0.08))
	assert.Equal(t, 0.0, RoundCents(0))
}

func TestProperty_RoundCentsIsStable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rounding an already-rounded amount changes nothing", prop.ForAll(
		func(cents int) bool {
			amount := float64(cents) / 100
			return RoundCents(RoundCents(amount)) == RoundCents(amount)
		},
		gen.IntRange(0, 10_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNewDesignID(t *testing.T) {
	at := time.UnixMilli(1726000000000)
	assert.Equal(t, "design-1726000000000", NewDesignID(at))
}

func TestDesignNameFromPrompt(t *testing.T) {
	assert.Equal(t, "Majestic lion", DesignNameFromPrompt("Majestic lion"))

	long := "a very long design prompt that keeps going well past thirty characters"
	name := DesignNameFromPrompt(long)
	assert.Len(t, name, 33)
	assert.Equal(t, long[:30]+"...", name)
}

func TestDesignNameFromPrompt_TruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte character straddling the cutoff must not be split.
	name := DesignNameFromPrompt(strings.Repeat("a", 29) + "é extra")
	assert.True(t, utf8.ValidString(name))
	assert.Equal(t, strings.Repeat("a", 29)+"é...", name)

	short := "café"
	assert.Equal(t, short, DesignNameFromPrompt(short))
}

func TestCartItemSameVariant(t *testing.T) {
	base := CartItem{DesignID: "design-1", Product: "Premium Cotton Tee", Color: "Black", Size: "M"}

	same := base
	same.ID = "different-id"
	same.Quantity = 5
	assert.True(t, base.SameVariant(same), "id and quantity are not part of the merge key")

	for _, mutate := range []func(*CartItem){
		func(c *CartItem) { c.DesignID = "design-2" },
		func(c *CartItem) { c.Product = "Premium Cotton Sweatshirt" },
		func(c *CartItem) { c.Color = "White" },
		func(c *CartItem) { c.Size = "L" },
	} {
		other := base
		mutate(&other)
		assert.False(t, base.SameVariant(other))
	}
}
