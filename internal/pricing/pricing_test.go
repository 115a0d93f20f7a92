package pricing

import (
	"testing"

	"github.com/joao-fontenele/storefront/internal/domain"
)

func line(id string, priceCents int64, qty int) domain.CartLine {
	return domain.CartLine{
		Product:  domain.Product{ID: id, Title: "Product " + id, PriceCents: priceCents},
		Quantity: qty,
	}
}

func TestQuote(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("subtotal below threshold pays flat shipping", func(t *testing.T) {
		got := policy.Quote([]domain.CartLine{line("p1", 2000, 2)})

		want := domain.OrderPricing{
			SubtotalCents: 4000,
			ShippingCents: 999,
			TaxCents:      320,
			TotalCents:    5319,
		}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("subtotal exactly at threshold ships free", func(t *testing.T) {
		got := policy.Quote([]domain.CartLine{line("p1", 5000, 1)})

		want := domain.OrderPricing{
			SubtotalCents: 5000,
			ShippingCents: 0,
			TaxCents:      400,
			TotalCents:    5400,
		}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("subtotal above threshold ships free", func(t *testing.T) {
		got := policy.Quote([]domain.CartLine{line("p1", 3000, 3)})

		if got.ShippingCents != 0 {
			t.Errorf("expected free shipping, got %d", got.ShippingCents)
		}
		if got.SubtotalCents != 9000 {
			t.Errorf("expected subtotal 9000, got %d", got.SubtotalCents)
		}
	})

	t.Run("negative price counts as zero", func(t *testing.T) {
		got := policy.Quote([]domain.CartLine{line("p1", -100, 2), line("p2", 1000, 1)})

		if got.SubtotalCents != 1000 {
			t.Errorf("expected subtotal 1000, got %d", got.SubtotalCents)
		}
	})

	t.Run("tax rounds half away from zero", func(t *testing.T) {
		// 1131 * 0.08 = 90.48 -> 90; 1231 * 0.08 = 98.48 -> 98; 1319 * 0.08 = 105.52 -> 106
		cases := []struct {
			subtotal int64
			tax      int64
		}{
			{1131, 90},
			{1319, 106},
			{100, 8},
		}
		for _, c := range cases {
			got := policy.Quote([]domain.CartLine{line("p1", c.subtotal, 1)})
			if got.TaxCents != c.tax {
				t.Errorf("subtotal %d: expected tax %d, got %d", c.subtotal, c.tax, got.TaxCents)
			}
		}
	})

	t.Run("quote is idempotent for the same snapshot", func(t *testing.T) {
		snapshot := []domain.CartLine{line("p1", 1999, 2), line("p2", 550, 1)}

		first := policy.Quote(snapshot)
		second := policy.Quote(snapshot)
		if first != second {
			t.Errorf("expected identical quotes, got %+v and %+v", first, second)
		}
	})
}

func TestPolicyValidate(t *testing.T) {
	t.Run("default policy is valid", func(t *testing.T) {
		if err := DefaultPolicy().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects negative threshold", func(t *testing.T) {
		p := DefaultPolicy()
		p.FreeShippingThresholdCents = -1
		if err := p.Validate(); err == nil {
			t.Error("expected error for negative threshold")
		}
	})

	t.Run("rejects negative shipping fee", func(t *testing.T) {
		p := DefaultPolicy()
		p.FlatShippingFeeCents = -50
		if err := p.Validate(); err == nil {
			t.Error("expected error for negative shipping fee")
		}
	})

	t.Run("rejects tax rate at or above 1", func(t *testing.T) {
		p := DefaultPolicy()
		p.TaxRate = 1.0
		if err := p.Validate(); err == nil {
			t.Error("expected error for tax rate 1.0")
		}
	})

	t.Run("rejects negative tax rate", func(t *testing.T) {
		p := DefaultPolicy()
		p.TaxRate = -0.08
		if err := p.Validate(); err == nil {
			t.Error("expected error for negative tax rate")
		}
	})
}

func TestPolicyFromEnv(t *testing.T) {
	t.Run("uses defaults when unset", func(t *testing.T) {
		p, err := PolicyFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != DefaultPolicy() {
			t.Errorf("expected default policy, got %+v", p)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("FREE_SHIPPING_THRESHOLD_CENTS", "10000")
		t.Setenv("FLAT_SHIPPING_FEE_CENTS", "499")
		t.Setenv("TAX_RATE", "0.1")

		p, err := PolicyFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.FreeShippingThresholdCents != 10000 || p.FlatShippingFeeCents != 499 || p.TaxRate != 0.1 {
			t.Errorf("unexpected policy: %+v", p)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Setenv("TAX_RATE", "eight percent")
		if _, err := PolicyFromEnv(); err == nil {
			t.Error("expected error for malformed TAX_RATE")
		}
	})
}
