package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
)

// ProductService handles product CRUD and detaches deleted products
// from the orders that reference them.
type ProductService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, orders repository.OrderRepository) *ProductService {
	return &ProductService{
		products: products,
		orders:   orders,
	}
}

// ListProducts returns all products.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

// GetProduct returns a product by id.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ProductAsJSON renders a stored product as a JSON string.
func (s *ProductService) ProductAsJSON(ctx context.Context, id int64) (string, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(product)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return string(data), nil
}

// ProductFromJSON parses a product from its JSON representation. The
// result is not persisted; the endpoint is a diagnostic echo.
func (s *ProductService) ProductFromJSON(raw string) (*models.Product, error) {
	var product models.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmarshal, err)
	}
	return &product, nil
}

// CreateProduct persists a new product and assigns its id.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.products.Create(ctx, product)
}

// UpdateProduct overwrites the stored product's fields and returns the
// updated product.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, details models.Product) (*models.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = details.Name
	existing.Description = details.Description
	existing.Price = details.Price
	existing.QuantityInStock = details.QuantityInStock

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteProduct removes the product from every order that references it
// and then deletes the product itself. Every occurrence is removed per
// order: an order holding two units of the product keeps no entry, so
// no order references the product once it is gone.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}

	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, order := range orders {
		kept := make([]models.Product, 0, len(order.Products))
		for _, p := range order.Products {
			if p.ProductID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(order.Products) {
			continue
		}
		order.Products = kept
		if err := s.orders.Update(ctx, &order); err != nil {
			return err
		}
	}

	return s.products.Delete(ctx, id)
}
