package domain

// CartItem is a configured design placed in the cart. At most one CartItem
// exists per distinct (DesignID, Product, Color, Size) tuple; adding the same
// combination again merges quantities instead of appending.
type CartItem struct {
	ID             string  `json:"id"`
	DesignID       string  `json:"designId"`
	DesignName     string  `json:"designName"`
	DesignImageURL string  `json:"designImageUrl"`
	HDImageURL     string  `json:"hdImageUrl,omitempty"`
	Product        string  `json:"product"`
	Color          string  `json:"color"`
	Size           string  `json:"size"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	TotalPrice     float64 `json:"totalPrice"`
	Prompt         string  `json:"prompt,omitempty"`
	RevisedPrompt  string  `json:"revisedPrompt,omitempty"`
}

// SameVariant reports whether two items refer to the same design and garment
// configuration, i.e. the merge key for the cart uniqueness invariant.
func (c CartItem) SameVariant(other CartItem) bool {
	return c.DesignID == other.DesignID &&
		c.Product == other.Product &&
		c.Color == other.Color &&
		c.Size == other.Size
}

// OrderSummary is derived from the cart at checkout time. It is never mutated
// independently; callers recompute it whenever the cart changes.
type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
