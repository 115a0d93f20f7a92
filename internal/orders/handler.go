package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/storefront/internal/cart"
	"github.com/joao-fontenele/storefront/internal/domain"
	"github.com/joao-fontenele/storefront/internal/messaging"
	"github.com/joao-fontenele/storefront/internal/pricing"
)

// maxNumberAttempts bounds the regenerate-and-retry loop when the
// generated order number collides with an existing one.
const maxNumberAttempts = 3

// Store is the persistence surface the handler needs. It is satisfied
// by *OrderRepository; tests substitute failure-injecting stubs.
type Store interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, limit, page int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type Handler struct {
	store        Store
	producer     *messaging.Producer
	carts        *cart.Store
	policy       pricing.Policy
	logger       *slog.Logger
	placedOrders metric.Int64Counter
}

// NewHandler wires the checkout pipeline. producer and carts may be
// nil: without a producer no event is published, without a cart store
// no session cart is cleared after checkout.
func NewHandler(store Store, producer *messaging.Producer, carts *cart.Store, policy pricing.Policy, logger *slog.Logger) (*Handler, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("pricing policy: %w", err)
	}

	placedOrders, err := otel.Meter("storefront/orders").Int64Counter(
		"storefront.orders.placed",
		metric.WithDescription("Number of orders accepted at checkout"),
	)
	if err != nil {
		return nil, err
	}

	return &Handler{
		store:        store,
		producer:     producer,
		carts:        carts,
		policy:       policy,
		logger:       logger,
		placedOrders: placedOrders,
	}, nil
}

type CheckoutResponse struct {
	Success     bool              `json:"success"`
	OrderNumber string            `json:"order_number,omitempty"`
	OrderID     string            `json:"order_id,omitempty"`
	Error       string            `json:"error,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, CheckoutResponse{Success: false, Error: "invalid request body"})
		return
	}

	if fields := validateCheckout(req); len(fields) > 0 {
		h.logger.Info("checkout rejected", "fields", len(fields))
		h.writeJSON(w, http.StatusBadRequest, CheckoutResponse{
			Success: false,
			Error:   "validation failed",
			Fields:  fields,
		})
		return
	}

	order := h.buildOrder(req)

	created := false
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		order.OrderNumber = NewOrderNumber()
		err := h.store.Create(r.Context(), order)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, ErrDuplicateOrderNumber) {
			h.logger.Warn("order number collision, regenerating", "order_number", order.OrderNumber, "attempt", attempt)
			continue
		}
		h.logger.Error("failed to create order", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, CheckoutResponse{Success: false, Error: "failed to create order"})
		return
	}
	if !created {
		h.logger.Error("order number collisions exhausted retries", "attempts", maxNumberAttempts)
		h.writeJSON(w, http.StatusInternalServerError, CheckoutResponse{Success: false, Error: "failed to create order"})
		return
	}

	h.placedOrders.Add(r.Context(), 1)

	if h.producer != nil {
		event := domain.OrderPlacedEvent{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			CustomerName:  order.Customer.FirstName + " " + order.Customer.LastName,
			CustomerEmail: order.Customer.Email,
			Items:         order.Items,
			TotalCents:    order.Pricing.TotalCents,
			PlacedAt:      order.PlacedAt,
		}
		if err := h.producer.Publish(r.Context(), order.ID, event); err != nil {
			h.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	// Clearing the session cart is strictly the last step: it only
	// happens once the order is confirmed persisted.
	if session := r.Header.Get(cart.SessionHeader); session != "" && h.carts != nil {
		h.carts.Clear(session)
	}

	h.logger.Info("order placed", "order_id", order.ID, "order_number", order.OrderNumber, "total_cents", order.Pricing.TotalCents)
	h.writeJSON(w, http.StatusCreated, CheckoutResponse{
		Success:     true,
		OrderNumber: order.OrderNumber,
		OrderID:     order.ID,
	})
}

// buildOrder turns a validated checkout request into an order record,
// capturing product prices at order time.
func (h *Handler) buildOrder(req CheckoutRequest) *domain.Order {
	now := time.Now().UTC()

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		price := line.Product.PriceCents
		if price < 0 {
			price = 0
		}
		items = append(items, domain.OrderItem{
			ProductID:      line.Product.ID,
			Title:          line.Product.Title,
			Quantity:       line.Quantity,
			UnitPriceCents: price,
		})
	}

	billing := domain.BillingAddress{SameAsShipping: true}
	if req.OrderData.BillingAddress != nil {
		billing = *req.OrderData.BillingAddress
	}
	if billing.SameAsShipping {
		billing.Address = req.OrderData.ShippingAddress
	}

	return &domain.Order{
		Status:          domain.OrderStatusPending,
		Items:           items,
		Pricing:         h.policy.Quote(req.Items),
		Customer:        req.OrderData.CustomerInfo,
		ShippingAddress: req.OrderData.ShippingAddress,
		BillingAddress:  billing,
		Payment: domain.PaymentInfo{
			Method:        req.OrderData.PaymentInfo.Method,
			CardNumber:    req.OrderData.PaymentInfo.CardNumber,
			CardName:      req.OrderData.PaymentInfo.CardName,
			ExpiryDate:    req.OrderData.PaymentInfo.ExpiryDate,
			TransactionID: fmt.Sprintf("TXN-%d", now.UnixMilli()),
		},
		PlacedAt: now,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, _ := strconv.Atoi(q.Get("page"))

	orders, err := h.store.List(r.Context(), limit, page)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("orders listed", "count", len(orders))
	h.writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !domain.ValidStatus(req.Status) {
		h.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	order, err := h.store.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("failed to update order status", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.logger.Info("order status updated", "order_id", order.ID, "status", order.Status)
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
