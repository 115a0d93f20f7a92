package orders

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/joao-fontenele/storefront/internal/domain"
)

// ErrDuplicateOrderNumber is returned when the orders table rejects an
// order number that already exists. The caller regenerates and
// retries; the first writer always wins.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

const pqUniqueViolation = "23505"

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, status,
			subtotal_cents, shipping_cents, tax_cents, total_cents,
			first_name, last_name, email, phone,
			ship_street, ship_city, ship_state, ship_zip, ship_country,
			bill_same_as_shipping, bill_street, bill_city, bill_state, bill_zip, bill_country,
			payment_method, card_number, card_name, expiry_date, transaction_id,
			placed_at, updated_at
		)
		VALUES (
			$1, $2, $3,
			$4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26, $27,
			$28, $28
		)
	`,
		order.ID, order.OrderNumber, order.Status,
		order.Pricing.SubtotalCents, order.Pricing.ShippingCents, order.Pricing.TaxCents, order.Pricing.TotalCents,
		order.Customer.FirstName, order.Customer.LastName, order.Customer.Email, order.Customer.Phone,
		order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.State, order.ShippingAddress.ZipCode, order.ShippingAddress.Country,
		order.BillingAddress.SameAsShipping, order.BillingAddress.Street, order.BillingAddress.City, order.BillingAddress.State, order.BillingAddress.ZipCode, order.BillingAddress.Country,
		order.Payment.Method, order.Payment.CardNumber, order.Payment.CardName, order.Payment.ExpiryDate, order.Payment.TransactionID,
		order.PlacedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateOrderNumber
		}
		return err
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, title, quantity, unit_price_cents)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), order.ID, item.ProductID, item.Title, item.Quantity, item.UnitPriceCents)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

const orderColumns = `
	id, order_number, status,
	subtotal_cents, shipping_cents, tax_cents, total_cents,
	first_name, last_name, email, phone,
	ship_street, ship_city, ship_state, ship_zip, ship_country,
	bill_same_as_shipping, bill_street, bill_city, bill_state, bill_zip, bill_country,
	payment_method, card_number, card_name, expiry_date, transaction_id,
	placed_at, updated_at
`

func scanOrder(row interface{ Scan(...any) error }, order *domain.Order) error {
	return row.Scan(
		&order.ID, &order.OrderNumber, &order.Status,
		&order.Pricing.SubtotalCents, &order.Pricing.ShippingCents, &order.Pricing.TaxCents, &order.Pricing.TotalCents,
		&order.Customer.FirstName, &order.Customer.LastName, &order.Customer.Email, &order.Customer.Phone,
		&order.ShippingAddress.Street, &order.ShippingAddress.City, &order.ShippingAddress.State, &order.ShippingAddress.ZipCode, &order.ShippingAddress.Country,
		&order.BillingAddress.SameAsShipping, &order.BillingAddress.Street, &order.BillingAddress.City, &order.BillingAddress.State, &order.BillingAddress.ZipCode, &order.BillingAddress.Country,
		&order.Payment.Method, &order.Payment.CardNumber, &order.Payment.CardName, &order.Payment.ExpiryDate, &order.Payment.TransactionID,
		&order.PlacedAt, &order.UpdatedAt,
	)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err := scanOrder(row, order); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, title, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

// List returns orders newest first with their items, avoiding one
// items query per order by loading all items for the page at once.
func (r *OrderRepository) List(ctx context.Context, limit, page int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY placed_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		order.Items = []domain.OrderItem{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, title, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Title, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Items = append(order.Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}
