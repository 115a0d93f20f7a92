// Package worker processes order.placed events: it sends the customer
// their confirmation email and advances the order to processing.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/storefront/internal/domain"
)

type FulfillmentHandler struct {
	emailServiceURL      string
	storefrontServiceURL string
	httpClient           *http.Client
	logger               *slog.Logger
}

func NewFulfillmentHandler(emailServiceURL, storefrontServiceURL string, client *http.Client, logger *slog.Logger) *FulfillmentHandler {
	return &FulfillmentHandler{
		emailServiceURL:      emailServiceURL,
		storefrontServiceURL: storefrontServiceURL,
		httpClient:           client,
		logger:               logger,
	}
}

// Handle runs the fulfillment steps for one event. Any error is
// returned to the consumer so the message is redelivered rather than
// committed.
func (h *FulfillmentHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("processing order placed event", "order_id", event.OrderID, "order_number", event.OrderNumber)

	if err := h.sendConfirmationEmail(ctx, event); err != nil {
		h.logger.Error("failed to send confirmation email", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	if err := h.updateOrderStatus(ctx, event.OrderID, domain.OrderStatusProcessing); err != nil {
		h.logger.Error("failed to update order status", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("update order status: %w", err)
	}

	h.logger.Info("order fulfillment started", "order_id", event.OrderID, "order_number", event.OrderNumber)
	return nil
}

func (h *FulfillmentHandler) sendConfirmationEmail(ctx context.Context, event domain.OrderPlacedEvent) error {
	units := 0
	for _, item := range event.Items {
		units += item.Quantity
	}

	body := map[string]string{
		"to":      event.CustomerEmail,
		"subject": "Order Confirmation: " + event.OrderNumber,
		"body": fmt.Sprintf("Hi %s, we received your order %s (%d items, $%d.%02d). We'll let you know when it ships.",
			event.CustomerName, event.OrderNumber, units, event.TotalCents/100, event.TotalCents%100),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.emailServiceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}

func (h *FulfillmentHandler) updateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	body := map[string]string{
		"status": string(status),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/orders/%s/status", h.storefrontServiceURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront service returned status %d", resp.StatusCode)
	}

	return nil
}
