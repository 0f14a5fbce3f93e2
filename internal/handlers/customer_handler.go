package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/service"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	service *service.CustomerService
	logger  *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *service.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger,
	}
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, customers, h.logger)
}

// GetCustomer handles GET /customers/{customerId}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customerId", h.logger)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, customer, h.logger)
}

// GetCustomerJSON handles GET /customers/{customerId}/json and returns
// the stored customer rendered as a raw JSON string.
func (h *CustomerHandler) GetCustomerJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customerId", h.logger)
	if !ok {
		return
	}

	raw, err := h.service.CustomerAsJSON(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteRawJSON(w, http.StatusOK, raw)
}

// CreateCustomerFromJSON handles POST /customers/from-json. The parsed
// customer is echoed back without being persisted.
func (h *CustomerHandler) CreateCustomerFromJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	customer, err := h.service.CustomerFromJSON(string(body))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, customer, h.logger)
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		h.logger.Error("failed to decode customer", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if errs := customer.Validate(); len(errs) > 0 {
		WriteJSON(w, http.StatusBadRequest, errs, h.logger)
		return
	}

	if err := h.service.CreateCustomer(r.Context(), &customer); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, customer, h.logger)
	h.logger.Info("customer created", "customer_id", customer.CustomerID)
}

// DeleteCustomer handles DELETE /customers/{customerId} and cascades to
// the customer's orders.
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customerId", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.logger.Info("customer deleted", "customer_id", id)
}
