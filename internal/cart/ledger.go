// Package cart maintains per-session shopping carts: an ordered list
// of product lines with always-consistent derived totals.
package cart

import "github.com/joao-fontenele/storefront/internal/domain"

// Cart is the in-session ledger of selected products. Lines keep
// insertion order; TotalItems and TotalPriceCents are recomputed from
// the line list after every mutation, never adjusted incrementally.
type Cart struct {
	Lines           []domain.CartLine `json:"lines"`
	TotalItems      int               `json:"total_items"`
	TotalPriceCents int64             `json:"total_price_cents"`
}

// Add increments the quantity of an existing line for the product, or
// appends a new line with quantity 1. It never fails.
func (c *Cart) Add(product domain.Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == product.ID {
			c.Lines[i].Quantity++
			c.recompute()
			return
		}
	}
	c.Lines = append(c.Lines, domain.CartLine{Product: product, Quantity: 1})
	c.recompute()
}

// Remove deletes the line for productID. Removing an absent product is
// a no-op, not an error.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			break
		}
	}
	c.recompute()
}

// SetQuantity sets the quantity of an existing line. A quantity of
// zero or less removes the line. Setting the quantity of a product not
// in the cart is a no-op; it is not an implicit add.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Quantity = quantity
			break
		}
	}
	c.recompute()
}

// Clear empties the cart and resets the totals.
func (c *Cart) Clear() {
	c.Lines = nil
	c.recompute()
}

// Snapshot returns a copy of the cart safe to hand to checkout while
// the session keeps mutating the original.
func (c *Cart) Snapshot() Cart {
	lines := make([]domain.CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{
		Lines:           lines,
		TotalItems:      c.TotalItems,
		TotalPriceCents: c.TotalPriceCents,
	}
}

func (c *Cart) recompute() {
	var items int
	var price int64
	for _, line := range c.Lines {
		items += line.Quantity
		unit := line.Product.PriceCents
		if unit < 0 {
			unit = 0
		}
		price += unit * int64(line.Quantity)
	}
	c.TotalItems = items
	c.TotalPriceCents = price
}
