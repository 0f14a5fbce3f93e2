package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/evgenygerasimov/commerce-api/internal/models"
)

// Kind identifies which entity table an error refers to.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindProduct  Kind = "product"
	KindOrder    Kind = "order"
)

// NotFoundError reports a lookup miss for a specific entity.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(kind Kind, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is a lookup miss of any kind.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines the interface for order data access.
// Update exists solely for the product-deletion cascade, which rewrites
// the product list of referencing orders.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id int64) error
}
