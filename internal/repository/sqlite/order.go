package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
)

// OrderRepository is the SQLite implementation of
// repository.OrderRepository. Orders materialize with their customer
// and product rows embedded; the join table keeps the product list
// ordered and allows duplicates (one row per purchased unit).
type OrderRepository struct {
	store *Store
}

const orderColumns = `
	o.order_id, o.order_date, o.shipping_address, o.total_price, o.order_status,
	c.customer_id, c.first_name, c.last_name, c.email, c.contact_number`

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	q := `
		SELECT` + orderColumns + `
		FROM   orders o
		JOIN   customers c ON c.customer_id = o.customer_id
		ORDER  BY o.order_id`

	rows, err := r.store.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}

	for i := range orders {
		if orders[i].Products, err = r.loadProducts(ctx, orders[i].OrderID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if !r.store.orderIDs.mayContain(id) {
		return nil, repository.NotFound(repository.KindOrder, id)
	}

	q := `
		SELECT` + orderColumns + `
		FROM   orders o
		JOIN   customers c ON c.customer_id = o.customer_id
		WHERE  o.order_id = ?`

	order, err := scanOrder(r.store.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.NotFound(repository.KindOrder, id)
	}
	if err != nil {
		return nil, err
	}

	if order.Products, err = r.loadProducts(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if !r.store.orderIDs.mayContain(id) {
		return false, nil
	}

	var one int
	err := r.store.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE order_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: order exists %d: %w", id, err)
	}
	return true, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: create order: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO orders (customer_id, order_date, shipping_address, total_price, order_status)
		VALUES (?, ?, ?, ?, ?)`

	res, err := tx.ExecContext(ctx, q,
		order.Customer.CustomerID,
		order.OrderDate.String(),
		order.ShippingAddress,
		order.TotalPrice,
		order.OrderStatus,
	)
	if err != nil {
		return fmt.Errorf("sqlite: create order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: create order: %w", err)
	}

	if err := insertOrderProducts(ctx, tx, id, order.Products); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: create order: %w", err)
	}

	order.OrderID = id
	r.store.orderIDs.add(id)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: update order %d: %w", order.OrderID, err)
	}
	defer tx.Rollback()

	const q = `
		UPDATE orders
		SET    customer_id = ?, order_date = ?, shipping_address = ?, total_price = ?, order_status = ?
		WHERE  order_id = ?`

	res, err := tx.ExecContext(ctx, q,
		order.Customer.CustomerID,
		order.OrderDate.String(),
		order.ShippingAddress,
		order.TotalPrice,
		order.OrderStatus,
		order.OrderID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update order %d: %w", order.OrderID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: update order %d: %w", order.OrderID, err)
	}
	if affected == 0 {
		return repository.NotFound(repository.KindOrder, order.OrderID)
	}

	// The product list is rewritten wholesale; positions restart at 0.
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = ?`, order.OrderID); err != nil {
		return fmt.Errorf("sqlite: update order %d: %w", order.OrderID, err)
	}
	if err := insertOrderProducts(ctx, tx, order.OrderID, order.Products); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: update order %d: %w", order.OrderID, err)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: delete order %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: delete order %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE order_id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete order %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete order %d: %w", id, err)
	}
	if affected == 0 {
		return repository.NotFound(repository.KindOrder, id)
	}
	return tx.Commit()
}

// loadProducts returns the order's product rows in purchase order.
func (r *OrderRepository) loadProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	const q = `
		SELECT p.product_id, p.name, p.description, p.price, p.quantity_in_stock
		FROM   order_products op
		JOIN   products p ON p.product_id = op.product_id
		WHERE  op.order_id = ?
		ORDER  BY op.position`

	rows, err := r.store.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load products for order %d: %w", orderID, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Description, &p.Price, &p.QuantityInStock); err != nil {
			return nil, fmt.Errorf("sqlite: load products for order %d: %w", orderID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: load products for order %d: %w", orderID, err)
	}
	return products, nil
}

func insertOrderProducts(ctx context.Context, tx *sql.Tx, orderID int64, products []models.Product) error {
	const q = `INSERT INTO order_products (order_id, product_id, position) VALUES (?, ?, ?)`
	for i, p := range products {
		if _, err := tx.ExecContext(ctx, q, orderID, p.ProductID, i); err != nil {
			return fmt.Errorf("sqlite: attach product %d to order %d: %w", p.ProductID, orderID, err)
		}
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	var o models.Order
	var date string
	err := s.Scan(
		&o.OrderID, &date, &o.ShippingAddress, &o.TotalPrice, &o.OrderStatus,
		&o.Customer.CustomerID, &o.Customer.FirstName, &o.Customer.LastName,
		&o.Customer.Email, &o.Customer.ContactNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("sqlite: scan order: %w", err)
	}

	if o.OrderDate, err = models.ParseDate(date); err != nil {
		return nil, fmt.Errorf("sqlite: scan order %d: %w", o.OrderID, err)
	}
	return &o, nil
}
