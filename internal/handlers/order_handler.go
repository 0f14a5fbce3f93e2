package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.logger)
}

// GetOrder handles GET /orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "orderId", h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.logger)
}

// GetOrderJSON handles GET /orders/{orderId}/json and returns the
// stored order rendered as a raw JSON string.
func (h *OrderHandler) GetOrderJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "orderId", h.logger)
	if !ok {
		return
	}

	raw, err := h.service.OrderAsJSON(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteRawJSON(w, http.StatusOK, raw)
}

// CreateOrderFromJSON handles POST /orders/from-json. The parsed order
// is echoed back without being persisted.
func (h *OrderHandler) CreateOrderFromJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	order, err := h.service.OrderFromJSON(string(body))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.logger)
}

// CreateOrder handles POST /orders and runs the placement workflow.
// The payload carries a customer reference and product references by
// id; any embedded field values other than the ids are ignored.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.logger.Error("failed to decode order", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if errs := order.Validate(); len(errs) > 0 {
		WriteJSON(w, http.StatusBadRequest, errs, h.logger)
		return
	}

	if err := h.service.CreateOrder(r.Context(), &order); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.logger)
	h.logger.Info("order created",
		"order_id", order.OrderID,
		"customer_id", order.Customer.CustomerID,
		"products", len(order.Products),
		"total_price", order.TotalPrice,
	)
}

// DeleteOrder handles DELETE /orders/{orderId}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "orderId", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.logger.Info("order deleted", "order_id", id)
}
