package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s belongs to the fixed order status set.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPaypal PaymentMethod = "paypal"
)

// OrderItem captures a cart line at order time: product id, title and
// unit price are copied, so historical orders survive catalog edits.
type OrderItem struct {
	ProductID      string `json:"product_id"`
	Title          string `json:"title"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// OrderPricing is the breakdown derived from a cart snapshot. All
// values are whole cents; recomputing from the same snapshot and
// policy yields the same result.
type OrderPricing struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type BillingAddress struct {
	SameAsShipping bool `json:"same_as_shipping"`
	Address
}

type PaymentInfo struct {
	Method        PaymentMethod `json:"method"`
	CardNumber    string        `json:"card_number,omitempty"`
	CardName      string        `json:"card_name,omitempty"`
	ExpiryDate    string        `json:"expiry_date,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
}

type Order struct {
	ID              string         `json:"id"`
	OrderNumber     string         `json:"order_number"`
	Status          OrderStatus    `json:"status"`
	Items           []OrderItem    `json:"items"`
	Pricing         OrderPricing   `json:"pricing"`
	Customer        CustomerInfo   `json:"customer"`
	ShippingAddress Address        `json:"shipping_address"`
	BillingAddress  BillingAddress `json:"billing_address"`
	Payment         PaymentInfo    `json:"payment"`
	PlacedAt        time.Time      `json:"placed_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
