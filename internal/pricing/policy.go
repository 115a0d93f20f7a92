package pricing

import (
	"fmt"
	"os"
	"strconv"
)

// Policy holds the checkout pricing constants. Amounts are whole
// cents; TaxRate is a fraction of the subtotal.
type Policy struct {
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64
	TaxRate                    float64
}

// DefaultPolicy returns the stock policy: free shipping from $50.00,
// $9.99 flat fee below that, 8% tax on the subtotal.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThresholdCents: 5000,
		FlatShippingFeeCents:       999,
		TaxRate:                    0.08,
	}
}

// PolicyFromEnv builds a Policy from FREE_SHIPPING_THRESHOLD_CENTS,
// FLAT_SHIPPING_FEE_CENTS and TAX_RATE, falling back to the defaults
// for unset variables. A malformed or out-of-range value is a
// configuration error.
func PolicyFromEnv() (Policy, error) {
	p := DefaultPolicy()

	if v := os.Getenv("FREE_SHIPPING_THRESHOLD_CENTS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Policy{}, fmt.Errorf("parse FREE_SHIPPING_THRESHOLD_CENTS: %w", err)
		}
		p.FreeShippingThresholdCents = n
	}

	if v := os.Getenv("FLAT_SHIPPING_FEE_CENTS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Policy{}, fmt.Errorf("parse FLAT_SHIPPING_FEE_CENTS: %w", err)
		}
		p.FlatShippingFeeCents = n
	}

	if v := os.Getenv("TAX_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Policy{}, fmt.Errorf("parse TAX_RATE: %w", err)
		}
		p.TaxRate = f
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}

	return p, nil
}

// Validate rejects malformed policy constants.
func (p Policy) Validate() error {
	if p.FreeShippingThresholdCents < 0 {
		return fmt.Errorf("free shipping threshold must be non-negative, got %d", p.FreeShippingThresholdCents)
	}
	if p.FlatShippingFeeCents < 0 {
		return fmt.Errorf("flat shipping fee must be non-negative, got %d", p.FlatShippingFeeCents)
	}
	if p.TaxRate < 0 || p.TaxRate >= 1 {
		return fmt.Errorf("tax rate must be in [0, 1), got %v", p.TaxRate)
	}
	return nil
}
