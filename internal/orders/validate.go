package orders

import (
	"fmt"
	"strings"

	"github.com/joao-fontenele/storefront/internal/domain"
)

type CheckoutRequest struct {
	Items     []domain.CartLine `json:"items"`
	OrderData OrderData         `json:"order_data"`
}

type OrderData struct {
	CustomerInfo    domain.CustomerInfo    `json:"customer_info"`
	ShippingAddress domain.Address         `json:"shipping_address"`
	BillingAddress  *domain.BillingAddress `json:"billing_address,omitempty"`
	PaymentInfo     PaymentData            `json:"payment_info"`
}

type PaymentData struct {
	Method     domain.PaymentMethod `json:"method"`
	CardNumber string               `json:"card_number,omitempty"`
	CardName   string               `json:"card_name,omitempty"`
	ExpiryDate string               `json:"expiry_date,omitempty"`
}

// validateCheckout checks a submission before anything touches the
// database. It returns one message per offending field; an empty map
// means the request is valid.
func validateCheckout(req CheckoutRequest) map[string]string {
	fields := make(map[string]string)

	if len(req.Items) == 0 {
		fields["items"] = "cart is empty"
	}
	for i, item := range req.Items {
		if item.Product.ID == "" {
			fields[fmt.Sprintf("items[%d].product.id", i)] = "product id is required"
		}
		if item.Quantity <= 0 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be positive"
		}
	}

	customer := req.OrderData.CustomerInfo
	if customer.FirstName == "" {
		fields["customer_info.first_name"] = "first name is required"
	}
	if customer.LastName == "" {
		fields["customer_info.last_name"] = "last name is required"
	}
	if customer.Email == "" {
		fields["customer_info.email"] = "email is required"
	} else if !strings.Contains(customer.Email, "@") {
		fields["customer_info.email"] = "email is malformed"
	}
	if customer.Phone == "" {
		fields["customer_info.phone"] = "phone is required"
	}

	shipping := req.OrderData.ShippingAddress
	if shipping.Street == "" {
		fields["shipping_address.street"] = "street is required"
	}
	if shipping.City == "" {
		fields["shipping_address.city"] = "city is required"
	}
	if shipping.State == "" {
		fields["shipping_address.state"] = "state is required"
	}
	if shipping.ZipCode == "" {
		fields["shipping_address.zip_code"] = "zip code is required"
	}
	if shipping.Country == "" {
		fields["shipping_address.country"] = "country is required"
	}

	payment := req.OrderData.PaymentInfo
	switch payment.Method {
	case domain.PaymentMethodCard:
		if payment.CardNumber == "" {
			fields["payment_info.card_number"] = "card number is required"
		}
		if payment.CardName == "" {
			fields["payment_info.card_name"] = "name on card is required"
		}
		if payment.ExpiryDate == "" {
			fields["payment_info.expiry_date"] = "expiry date is required"
		}
	case domain.PaymentMethodPaypal:
		// nothing beyond the method itself
	default:
		fields["payment_info.method"] = "payment method must be card or paypal"
	}

	return fields
}
