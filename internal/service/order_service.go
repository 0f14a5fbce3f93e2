package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
)

// OrderService orchestrates order placement against the customer and
// product stores. All dependencies are repositories resolved at
// startup; the stock decrement goes straight through ProductRepository
// rather than through ProductService, so no service depends on another
// service.
type OrderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
) *OrderService {
	return &OrderService{
		orders:    orders,
		customers: customers,
		products:  products,
	}
}

// ListOrders returns all orders.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.GetAll(ctx)
}

// GetOrder returns an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// OrderAsJSON renders a stored order as a JSON string.
func (s *OrderService) OrderAsJSON(ctx context.Context, id int64) (string, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return string(data), nil
}

// OrderFromJSON parses an order from its JSON representation. The
// result is not persisted; the endpoint is a diagnostic echo.
func (s *OrderService) OrderFromJSON(raw string) (*models.Order, error) {
	var order models.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmarshal, err)
	}
	return &order, nil
}

// CreateOrder runs the placement workflow: resolve the customer,
// resolve and stock-check every product reference, decrement stock,
// accumulate the total and persist the order.
//
// The two loops are separate. Every reference is resolved
// and stock-checked before the first decrement, so a missing customer,
// missing product or exhausted product aborts the request without
// touching any row. Duplicate references share one resolved product, so
// N occurrences decrement its stock N times; the stock check itself
// runs against the pre-decrement value. Stock decrements that precede a
// failing order insert are not rolled back.
//
// The total price is additive on top of the caller-supplied totalPrice;
// callers are expected to send 0.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) error {
	customer, err := s.customers.GetByID(ctx, order.Customer.CustomerID)
	if err != nil {
		return err
	}

	byID := make(map[int64]*models.Product)
	resolved := make([]*models.Product, 0, len(order.Products))
	for _, ref := range order.Products {
		product := byID[ref.ProductID]
		if product == nil {
			if product, err = s.products.GetByID(ctx, ref.ProductID); err != nil {
				return err
			}
			byID[ref.ProductID] = product
		}
		if product.QuantityInStock < 1 {
			return &OutOfStockError{ProductID: product.ProductID}
		}
		resolved = append(resolved, product)
	}

	total := order.TotalPrice
	for _, product := range resolved {
		product.QuantityInStock--
		if err := s.products.Update(ctx, product); err != nil {
			return err
		}
		total += product.Price
	}

	attached := make([]models.Product, len(resolved))
	for i, product := range resolved {
		attached[i] = *product
	}

	order.Customer = *customer
	order.Products = attached
	order.TotalPrice = total
	return s.orders.Create(ctx, order)
}

// DeleteOrder removes an order by id.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	exists, err := s.orders.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return repository.NotFound(repository.KindOrder, id)
	}
	return s.orders.Delete(ctx, id)
}
