package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCustomerRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	customers := store.Customers()

	customer := models.Customer{
		FirstName:     "John",
		LastName:      "Doe",
		Email:         "johndoe@example.com",
		ContactNumber: "1234567890",
	}
	require.NoError(t, customers.Create(ctx, &customer))
	assert.NotZero(t, customer.CustomerID)

	got, err := customers.GetByID(ctx, customer.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, customer, *got)

	exists, err := customers.ExistsByID(ctx, customer.CustomerID)
	require.NoError(t, err)
	assert.True(t, exists)

	all, err := customers.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, customers.Delete(ctx, customer.CustomerID))

	exists, err = customers.ExistsByID(ctx, customer.CustomerID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCustomerRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	customers := store.Customers()

	_, err := customers.GetByID(ctx, 42)
	require.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
	assert.EqualError(t, err, "customer with id 42 not found")

	err = customers.Delete(ctx, 42)
	assert.True(t, repository.IsNotFound(err))
}

func TestProductRepository_Update(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	products := store.Products()

	product := models.Product{Name: "Widget", Description: "A widget", Price: 9.99, QuantityInStock: 5}
	require.NoError(t, products.Create(ctx, &product))

	product.QuantityInStock = 4
	product.Price = 10.49
	require.NoError(t, products.Update(ctx, &product))

	got, err := products.GetByID(ctx, product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.QuantityInStock)
	assert.Equal(t, 10.49, got.Price)

	missing := models.Product{ProductID: 99, Name: "Ghost"}
	err = products.Update(ctx, &missing)
	assert.True(t, repository.IsNotFound(err))
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	customer := models.Customer{FirstName: "John", LastName: "Doe", Email: "johndoe@example.com", ContactNumber: "1234567890"}
	require.NoError(t, store.Customers().Create(ctx, &customer))

	widget := models.Product{Name: "Widget", Price: 9.99, QuantityInStock: 5}
	gadget := models.Product{Name: "Gadget", Price: 4.50, QuantityInStock: 2}
	require.NoError(t, store.Products().Create(ctx, &widget))
	require.NoError(t, store.Products().Create(ctx, &gadget))

	orders := store.Orders()
	order := models.Order{
		Customer: customer,
		// Duplicate occurrence of widget: two units, order preserved.
		Products:        []models.Product{widget, gadget, widget},
		OrderDate:       models.NewDate(2024, time.March, 15),
		ShippingAddress: "1 Main St",
		TotalPrice:      24.48,
		OrderStatus:     "NEW",
	}
	require.NoError(t, orders.Create(ctx, &order))
	require.NotZero(t, order.OrderID)

	got, err := orders.GetByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, customer, got.Customer)
	assert.Equal(t, "2024-03-15", got.OrderDate.String())
	assert.Equal(t, "1 Main St", got.ShippingAddress)
	assert.Equal(t, 24.48, got.TotalPrice)
	assert.Equal(t, "NEW", got.OrderStatus)

	require.Len(t, got.Products, 3)
	assert.Equal(t, widget.ProductID, got.Products[0].ProductID)
	assert.Equal(t, gadget.ProductID, got.Products[1].ProductID)
	assert.Equal(t, widget.ProductID, got.Products[2].ProductID)
}

func TestOrderRepository_UpdateRewritesProducts(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	customer := models.Customer{FirstName: "John", LastName: "Doe", Email: "johndoe@example.com", ContactNumber: "1234567890"}
	require.NoError(t, store.Customers().Create(ctx, &customer))

	widget := models.Product{Name: "Widget", Price: 9.99, QuantityInStock: 5}
	gadget := models.Product{Name: "Gadget", Price: 4.50, QuantityInStock: 2}
	require.NoError(t, store.Products().Create(ctx, &widget))
	require.NoError(t, store.Products().Create(ctx, &gadget))

	orders := store.Orders()
	order := models.Order{
		Customer:        customer,
		Products:        []models.Product{widget, gadget},
		ShippingAddress: "1 Main St",
		OrderStatus:     "NEW",
	}
	require.NoError(t, orders.Create(ctx, &order))

	order.Products = []models.Product{gadget}
	require.NoError(t, orders.Update(ctx, &order))

	got, err := orders.GetByID(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, gadget.ProductID, got.Products[0].ProductID)
}

func TestOrderRepository_DeleteRemovesJoinRows(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	customer := models.Customer{FirstName: "John", LastName: "Doe", Email: "johndoe@example.com", ContactNumber: "1234567890"}
	require.NoError(t, store.Customers().Create(ctx, &customer))

	widget := models.Product{Name: "Widget", Price: 9.99, QuantityInStock: 5}
	require.NoError(t, store.Products().Create(ctx, &widget))

	orders := store.Orders()
	order := models.Order{
		Customer:        customer,
		Products:        []models.Product{widget},
		ShippingAddress: "1 Main St",
		OrderStatus:     "NEW",
	}
	require.NoError(t, orders.Create(ctx, &order))
	require.NoError(t, orders.Delete(ctx, order.OrderID))

	_, err := orders.GetByID(ctx, order.OrderID)
	assert.True(t, repository.IsNotFound(err))

	var count int
	err = store.db.QueryRow(`SELECT COUNT(*) FROM order_products WHERE order_id = ?`, order.OrderID).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = orders.Delete(ctx, order.OrderID)
	assert.True(t, repository.IsNotFound(err))
}

func TestStore_FilterSeededOnOpen(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	// A fresh filter must not claim ids it never saw.
	assert.False(t, store.productIDs.mayContain(7))

	product := models.Product{Name: "Widget", Price: 9.99, QuantityInStock: 5}
	require.NoError(t, store.Products().Create(ctx, &product))
	assert.True(t, store.productIDs.mayContain(product.ProductID))

	// Deleted ids stay in the filter; the SQL query answers instead.
	require.NoError(t, store.Products().Delete(ctx, product.ProductID))
	exists, err := store.Products().ExistsByID(ctx, product.ProductID)
	require.NoError(t, err)
	assert.False(t, exists)
}
