package domain

import "math"

// Garment catalog. The storefront sells a small fixed range; there is no
// product database behind it.
var (
	ProductTypes = []string{
		"Premium Cotton Tee",
		"Premium Cotton Sweatshirt",
		"Premium Lightweight Hoodie",
	}

	ProductColors = []string{"White", "Black"}

	ProductSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}
)

// BasePrice is the unit price shared by all garments.
const BasePrice = 19.95

// DefaultProductConfig is the configuration shown before the user touches
// anything.
func DefaultProductConfig() ProductConfig {
	return ProductConfig{
		Product: "Premium Cotton Tee",
		Color:   "White",
		Size:    "M",
		Amount:  1,
	}
}

// ValidProduct reports whether the product type is in the catalog.
func ValidProduct(product string) bool {
	return contains(ProductTypes, product)
}

// ValidColor reports whether the color is offered.
func ValidColor(color string) bool {
	return contains(ProductColors, color)
}

// ValidSize reports whether the size is offered.
func ValidSize(size string) bool {
	return contains(ProductSizes, size)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// RoundCents rounds a dollar amount to the nearest cent. All derived money
// values (line totals, tax, order totals) pass through here so that sums add
// up exactly to the cent.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
