package orders

import (
	"testing"

	"github.com/joao-fontenele/storefront/internal/domain"
)

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		Items: []domain.CartLine{
			{Product: domain.Product{ID: "p1", Title: "Vase", PriceCents: 2000}, Quantity: 1},
		},
		OrderData: OrderData{
			CustomerInfo: domain.CustomerInfo{
				FirstName: "Ana",
				LastName:  "Souza",
				Email:     "ana@example.com",
				Phone:     "555-0101",
			},
			ShippingAddress: domain.Address{
				Street:  "1 Main St",
				City:    "Springfield",
				State:   "IL",
				ZipCode: "62701",
				Country: "US",
			},
			PaymentInfo: PaymentData{
				Method:     domain.PaymentMethodCard,
				CardNumber: "4242424242424242",
				CardName:   "Ana Souza",
				ExpiryDate: "12/30",
			},
		},
	}
}

func TestValidateCheckout(t *testing.T) {
	t.Run("valid card request passes", func(t *testing.T) {
		if fields := validateCheckout(validRequest()); len(fields) != 0 {
			t.Errorf("expected no field errors, got %+v", fields)
		}
	})

	t.Run("paypal needs no card fields", func(t *testing.T) {
		req := validRequest()
		req.OrderData.PaymentInfo = PaymentData{Method: domain.PaymentMethodPaypal}

		if fields := validateCheckout(req); len(fields) != 0 {
			t.Errorf("expected no field errors, got %+v", fields)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		req := validRequest()
		req.Items = nil

		fields := validateCheckout(req)
		if fields["items"] == "" {
			t.Errorf("expected items error, got %+v", fields)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		req := validRequest()
		req.Items[0].Quantity = 0

		fields := validateCheckout(req)
		if fields["items[0].quantity"] == "" {
			t.Errorf("expected quantity error, got %+v", fields)
		}
	})

	t.Run("missing product id", func(t *testing.T) {
		req := validRequest()
		req.Items[0].Product.ID = ""

		fields := validateCheckout(req)
		if fields["items[0].product.id"] == "" {
			t.Errorf("expected product id error, got %+v", fields)
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		req := validRequest()
		req.OrderData.CustomerInfo.Email = "ana.example.com"

		fields := validateCheckout(req)
		if fields["customer_info.email"] == "" {
			t.Errorf("expected email error, got %+v", fields)
		}
	})

	t.Run("incomplete shipping address", func(t *testing.T) {
		req := validRequest()
		req.OrderData.ShippingAddress.Country = ""
		req.OrderData.ShippingAddress.ZipCode = ""

		fields := validateCheckout(req)
		if fields["shipping_address.country"] == "" || fields["shipping_address.zip_code"] == "" {
			t.Errorf("expected address errors, got %+v", fields)
		}
	})

	t.Run("unknown payment method", func(t *testing.T) {
		req := validRequest()
		req.OrderData.PaymentInfo.Method = "bitcoin"

		fields := validateCheckout(req)
		if fields["payment_info.method"] == "" {
			t.Errorf("expected payment method error, got %+v", fields)
		}
	})

	t.Run("card without card fields", func(t *testing.T) {
		req := validRequest()
		req.OrderData.PaymentInfo = PaymentData{Method: domain.PaymentMethodCard}

		fields := validateCheckout(req)
		for _, field := range []string{"payment_info.card_number", "payment_info.card_name", "payment_info.expiry_date"} {
			if fields[field] == "" {
				t.Errorf("expected error for %s, got %+v", field, fields)
			}
		}
	})
}
