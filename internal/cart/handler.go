package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/storefront/internal/domain"
)

// SessionHeader carries the cart session id. The handler mints a new
// session when the header is absent and always echoes it back.
const SessionHeader = "X-Cart-Session"

// ProductSource resolves product ids against the catalog so cart lines
// always carry a full product snapshot.
type ProductSource interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Handler struct {
	store    *Store
	products ProductSource
	logger   *slog.Logger
}

func NewHandler(store *Store, products ProductSource, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		products: products,
		logger:   logger,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	w.Header().Set(SessionHeader, session)
	h.writeJSON(w, http.StatusOK, h.store.Snapshot(session))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		h.logger.Error("failed to load product", "error", err, "product_id", req.ProductID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	session := h.session(r)
	w.Header().Set(SessionHeader, session)

	snapshot := h.store.Add(session, *product)
	h.logger.Info("cart item added", "session", session, "product_id", product.ID, "total_items", snapshot.TotalItems)
	h.writeJSON(w, http.StatusOK, snapshot)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := h.session(r)
	w.Header().Set(SessionHeader, session)

	snapshot := h.store.SetQuantity(session, productID, req.Quantity)
	h.logger.Info("cart quantity updated", "session", session, "product_id", productID, "quantity", req.Quantity)
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	session := h.session(r)
	w.Header().Set(SessionHeader, session)

	snapshot := h.store.Remove(session, productID)
	h.logger.Info("cart item removed", "session", session, "product_id", productID)
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	w.Header().Set(SessionHeader, session)

	snapshot := h.store.Clear(session)
	h.logger.Info("cart cleared", "session", session)
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) session(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return h.store.NewSession()
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
