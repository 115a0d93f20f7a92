package domain

import "time"

type OrderPlacedEvent struct {
	OrderID       string      `json:"order_id"`
	OrderNumber   string      `json:"order_number"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"total_cents"`
	PlacedAt      time.Time   `json:"placed_at"`
}
