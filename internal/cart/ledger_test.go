package cart

import (
	"testing"

	"github.com/joao-fontenele/storefront/internal/domain"
)

func product(id string, priceCents int64) domain.Product {
	return domain.Product{ID: id, Title: "Product " + id, PriceCents: priceCents}
}

// checkTotals recomputes the expected totals from the line list and
// compares them with the cart's derived fields.
func checkTotals(t *testing.T, c *Cart) {
	t.Helper()

	var items int
	var price int64
	for _, line := range c.Lines {
		items += line.Quantity
		price += line.Product.PriceCents * int64(line.Quantity)
	}

	if c.TotalItems != items {
		t.Errorf("total items drifted: expected %d, got %d", items, c.TotalItems)
	}
	if c.TotalPriceCents != price {
		t.Errorf("total price drifted: expected %d, got %d", price, c.TotalPriceCents)
	}
}

func TestCartAdd(t *testing.T) {
	t.Run("new product appends a line with quantity 1", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))

		if len(c.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(c.Lines))
		}
		if c.Lines[0].Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", c.Lines[0].Quantity)
		}
		checkTotals(t, c)
	})

	t.Run("existing product increments in place", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))
		c.Add(product("p1", 1000))

		if len(c.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(c.Lines))
		}
		if c.Lines[0].Quantity != 2 {
			t.Errorf("expected quantity 2, got %d", c.Lines[0].Quantity)
		}
		checkTotals(t, c)
	})

	t.Run("adding twice equals add then set quantity 2", func(t *testing.T) {
		twice := &Cart{}
		twice.Add(product("p1", 1500))
		twice.Add(product("p1", 1500))

		set := &Cart{}
		set.Add(product("p1", 1500))
		set.SetQuantity("p1", 2)

		if twice.TotalItems != set.TotalItems || twice.TotalPriceCents != set.TotalPriceCents {
			t.Errorf("carts diverged: %+v vs %+v", twice, set)
		}
		if len(twice.Lines) != len(set.Lines) || twice.Lines[0].Quantity != set.Lines[0].Quantity {
			t.Errorf("lines diverged: %+v vs %+v", twice.Lines, set.Lines)
		}
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 100))
		c.Add(product("p2", 200))
		c.Add(product("p1", 100))
		c.Add(product("p3", 300))

		ids := []string{"p1", "p2", "p3"}
		if len(c.Lines) != len(ids) {
			t.Fatalf("expected %d lines, got %d", len(ids), len(c.Lines))
		}
		for i, id := range ids {
			if c.Lines[i].Product.ID != id {
				t.Errorf("line %d: expected %s, got %s", i, id, c.Lines[i].Product.ID)
			}
		}
	})
}

func TestCartRemove(t *testing.T) {
	t.Run("removes the matching line", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))
		c.Add(product("p2", 2000))

		c.Remove("p1")

		if len(c.Lines) != 1 || c.Lines[0].Product.ID != "p2" {
			t.Fatalf("unexpected lines: %+v", c.Lines)
		}
		checkTotals(t, c)
	})

	t.Run("absent product is a no-op", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))
		before := c.Snapshot()

		c.Remove("missing")

		if len(c.Lines) != 1 || c.TotalItems != before.TotalItems || c.TotalPriceCents != before.TotalPriceCents {
			t.Errorf("cart changed: before %+v, after %+v", before, c)
		}
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))

		c.Remove("p1")
		c.Remove("p1")

		if len(c.Lines) != 0 || c.TotalItems != 0 || c.TotalPriceCents != 0 {
			t.Errorf("expected empty cart, got %+v", c)
		}
	})
}

func TestCartSetQuantity(t *testing.T) {
	t.Run("sets the quantity of an existing line", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))

		c.SetQuantity("p1", 5)

		if c.Lines[0].Quantity != 5 {
			t.Errorf("expected quantity 5, got %d", c.Lines[0].Quantity)
		}
		if c.TotalPriceCents != 5000 {
			t.Errorf("expected total 5000, got %d", c.TotalPriceCents)
		}
		checkTotals(t, c)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))

		c.SetQuantity("p1", 0)

		if len(c.Lines) != 0 {
			t.Errorf("expected empty cart, got %+v", c.Lines)
		}
	})

	t.Run("negative removes the line", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))

		c.SetQuantity("p1", -1)

		if len(c.Lines) != 0 {
			t.Errorf("expected empty cart, got %+v", c.Lines)
		}
	})

	t.Run("unknown product is not an implicit add", func(t *testing.T) {
		c := &Cart{}
		c.Add(product("p1", 1000))

		c.SetQuantity("missing", 3)

		if len(c.Lines) != 1 {
			t.Errorf("expected 1 line, got %d", len(c.Lines))
		}
		if c.TotalItems != 1 {
			t.Errorf("expected 1 item, got %d", c.TotalItems)
		}
	})
}

func TestCartClear(t *testing.T) {
	c := &Cart{}
	c.Add(product("p1", 1000))
	c.Add(product("p2", 2000))

	c.Clear()

	if len(c.Lines) != 0 || c.TotalItems != 0 || c.TotalPriceCents != 0 {
		t.Errorf("expected empty cart, got %+v", c)
	}
}

// TestCartTotalsNeverDrift runs a mixed operation sequence and checks
// the derived totals against the line list after every step.
func TestCartTotalsNeverDrift(t *testing.T) {
	c := &Cart{}

	ops := []func(){
		func() { c.Add(product("p1", 1299)) },
		func() { c.Add(product("p2", 450)) },
		func() { c.Add(product("p1", 1299)) },
		func() { c.SetQuantity("p2", 4) },
		func() { c.Remove("p3") },
		func() { c.Add(product("p3", 9999)) },
		func() { c.SetQuantity("p1", 0) },
		func() { c.SetQuantity("p3", -2) },
		func() { c.Add(product("p2", 450)) },
		func() { c.Remove("p2") },
		func() { c.Clear() },
	}

	for i, op := range ops {
		op()
		checkTotals(t, c)
		if t.Failed() {
			t.Fatalf("totals drifted after operation %d", i)
		}
	}
}

func TestCartSnapshot(t *testing.T) {
	c := &Cart{}
	c.Add(product("p1", 1000))

	snap := c.Snapshot()
	c.Add(product("p2", 2000))

	if len(snap.Lines) != 1 {
		t.Errorf("snapshot mutated: %+v", snap.Lines)
	}
	if snap.TotalPriceCents != 1000 {
		t.Errorf("expected snapshot total 1000, got %d", snap.TotalPriceCents)
	}
}
