// Package pricing derives an order pricing breakdown from a cart
// snapshot and a configured policy.
package pricing

import (
	"math"

	"github.com/joao-fontenele/storefront/internal/domain"
)

// Quote computes the pricing breakdown for the given cart lines.
// Shipping is free exactly at the threshold and above. Tax applies to
// the subtotal only, not to shipping. A negative unit price counts
// as zero rather than reducing the subtotal.
func (p Policy) Quote(lines []domain.CartLine) domain.OrderPricing {
	var subtotal int64
	for _, line := range lines {
		price := line.Product.PriceCents
		if price < 0 {
			price = 0
		}
		subtotal += price * int64(line.Quantity)
	}

	shipping := p.FlatShippingFeeCents
	if subtotal >= p.FreeShippingThresholdCents {
		shipping = 0
	}

	tax := int64(math.Round(float64(subtotal) * p.TaxRate))

	return domain.OrderPricing{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotal + shipping + tax,
	}
}
