package domain

// ProductSnapshot captures the catalog fields a line item needs for display
// and validation, frozen at the moment the item is added. Prices are whole
// VND, so int64 is exact.
type ProductSnapshot struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	Price        int64  `json:"price"`
	OldPrice     int64  `json:"old_price,omitempty"`
	ImageURL     string `json:"main_image_url,omitempty"`
	Stock        int    `json:"stock"`
	Unit         string `json:"unit"`
	CategoryName string `json:"category_name,omitempty"`
}

// CartItem is a single line in the cart. ID is assigned when the line is
// created and is distinct from the product id. Price is the unit price
// snapshotted at add time; Subtotal is always Price * Quantity.
type CartItem struct {
	ID       string          `json:"id"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Price    int64           `json:"price"`
	Subtotal int64           `json:"subtotal"`
}

type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice int64      `json:"total_price"`
	ItemsCount int        `json:"items_count"`
}

// Empty returns a well-defined zero cart (non-nil items slice so it
// serializes as [] rather than null).
func Empty() Cart {
	return Cart{Items: []CartItem{}}
}

// Recalculate builds a cart from the given items with all derived totals
// recomputed from scratch. Totals are never patched incrementally.
func Recalculate(items []CartItem) Cart {
	c := Cart{Items: items}
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		c.TotalPrice += item.Subtotal
	}
	c.ItemsCount = len(c.Items)
	return c
}

// Find returns the index of the line item holding productID, or -1.
func (c Cart) Find(productID int64) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy, so callers can hand out snapshots without
// exposing the authoritative items slice to mutation.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
