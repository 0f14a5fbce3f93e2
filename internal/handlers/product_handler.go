package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productId", h.logger)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// GetProductJSON handles GET /products/{productId}/json and returns the
// stored product rendered as a raw JSON string.
func (h *ProductHandler) GetProductJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productId", h.logger)
	if !ok {
		return
	}

	raw, err := h.service.ProductAsJSON(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteRawJSON(w, http.StatusOK, raw)
}

// CreateProductFromJSON handles POST /products/from-json. The parsed
// product is echoed back without being persisted.
func (h *ProductHandler) CreateProductFromJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.ProductFromJSON(string(body))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.logger.Error("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if errs := product.Validate(); len(errs) > 0 {
		WriteJSON(w, http.StatusBadRequest, errs, h.logger)
		return
	}

	if err := h.service.CreateProduct(r.Context(), &product); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.logger)
	h.logger.Info("product created", "product_id", product.ProductID)
}

// UpdateProduct handles PUT /products/{productId}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productId", h.logger)
	if !ok {
		return
	}

	var details models.Product
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		h.logger.Error("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if errs := details.Validate(); len(errs) > 0 {
		WriteJSON(w, http.StatusBadRequest, errs, h.logger)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, details)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /products/{productId} and detaches the
// product from every referencing order first.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productId", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.logger.Info("product deleted", "product_id", id)
}
