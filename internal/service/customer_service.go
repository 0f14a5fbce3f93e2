package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
)

// CustomerService handles customer lookups, creation and the cascading
// deletion of a customer's orders.
type CustomerService struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customers repository.CustomerRepository, orders repository.OrderRepository) *CustomerService {
	return &CustomerService{
		customers: customers,
		orders:    orders,
	}
}

// ListCustomers returns all customers.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.GetAll(ctx)
}

// GetCustomer returns a customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// CustomerAsJSON renders a stored customer as a JSON string.
func (s *CustomerService) CustomerAsJSON(ctx context.Context, id int64) (string, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(customer)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return string(data), nil
}

// CustomerFromJSON parses a customer from its JSON representation. The
// result is not persisted; the endpoint is a diagnostic echo.
func (s *CustomerService) CustomerFromJSON(raw string) (*models.Customer, error) {
	var customer models.Customer
	if err := json.Unmarshal([]byte(raw), &customer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmarshal, err)
	}
	return &customer, nil
}

// CreateCustomer persists a new customer and assigns its id.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.customers.Create(ctx, customer)
}

// DeleteCustomer removes the customer and every order referencing it.
// Orders are found by a full scan; there is no index by customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	exists, err := s.customers.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return repository.NotFound(repository.KindCustomer, id)
	}

	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, order := range orders {
		if order.Customer.CustomerID != id {
			continue
		}
		if err := s.orders.Delete(ctx, order.OrderID); err != nil {
			return err
		}
	}

	return s.customers.Delete(ctx, id)
}
