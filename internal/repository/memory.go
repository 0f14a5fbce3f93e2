package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/evgenygerasimov/commerce-api/internal/models"
)

// In-memory implementations of the repository contracts. The server
// runs against the SQLite store; these back the service and handler
// tests. Maps are guarded with RWMutex so tests stay race-clean.

// InMemoryCustomerRepository implements CustomerRepository with map storage.
type InMemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]models.Customer
	nextID    int64
}

// NewInMemoryCustomerRepository creates an empty in-memory customer repository.
func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{
		customers: make(map[int64]models.Customer),
		nextID:    1,
	}
}

func (r *InMemoryCustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, customer)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].CustomerID < customers[j].CustomerID })
	return customers, nil
}

func (r *InMemoryCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[id]
	if !exists {
		return nil, NotFound(KindCustomer, id)
	}
	return &customer, nil
}

func (r *InMemoryCustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.customers[id]
	return exists, nil
}

func (r *InMemoryCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer.CustomerID = r.nextID
	r.nextID++
	r.customers[customer.CustomerID] = *customer
	return nil
}

func (r *InMemoryCustomerRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[id]; !exists {
		return NotFound(KindCustomer, id)
	}
	delete(r.customers, id)
	return nil
}

// InMemoryProductRepository implements ProductRepository with map storage.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	nextID   int64
}

// NewInMemoryProductRepository creates an empty in-memory product repository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[int64]models.Product),
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	return products, nil
}

func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, NotFound(KindProduct, id)
	}
	return &product, nil
}

func (r *InMemoryProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.products[id]
	return exists, nil
}

func (r *InMemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ProductID = r.nextID
	r.nextID++
	r.products[product.ProductID] = *product
	return nil
}

func (r *InMemoryProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ProductID]; !exists {
		return NotFound(KindProduct, product.ProductID)
	}
	r.products[product.ProductID] = *product
	return nil
}

func (r *InMemoryProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return NotFound(KindProduct, id)
	}
	delete(r.products, id)
	return nil
}

// InMemoryOrderRepository implements OrderRepository with map storage.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]models.Order
	nextID int64
}

// NewInMemoryOrderRepository creates an empty in-memory order repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[int64]models.Order),
		nextID: 1,
	}
}

func (r *InMemoryOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, copyOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders, nil
}

func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, NotFound(KindOrder, id)
	}
	copied := copyOrder(order)
	return &copied, nil
}

func (r *InMemoryOrderRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.orders[id]
	return exists, nil
}

func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.OrderID = r.nextID
	r.nextID++
	r.orders[order.OrderID] = copyOrder(*order)
	return nil
}

func (r *InMemoryOrderRepository) Update(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderID]; !exists {
		return NotFound(KindOrder, order.OrderID)
	}
	r.orders[order.OrderID] = copyOrder(*order)
	return nil
}

func (r *InMemoryOrderRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[id]; !exists {
		return NotFound(KindOrder, id)
	}
	delete(r.orders, id)
	return nil
}

// copyOrder clones the order's product slice so callers never alias
// stored state.
func copyOrder(order models.Order) models.Order {
	if order.Products != nil {
		order.Products = append([]models.Product(nil), order.Products...)
	}
	return order
}
