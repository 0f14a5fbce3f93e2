package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
)

// ProductRepository is the SQLite implementation of
// repository.ProductRepository.
type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	const q = `
		SELECT product_id, name, description, price, quantity_in_stock
		FROM   products
		ORDER  BY product_id`

	rows, err := r.store.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Description, &p.Price, &p.QuantityInStock); err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if !r.store.productIDs.mayContain(id) {
		return nil, repository.NotFound(repository.KindProduct, id)
	}

	const q = `
		SELECT product_id, name, description, price, quantity_in_stock
		FROM   products
		WHERE  product_id = ?`

	var p models.Product
	err := r.store.db.QueryRowContext(ctx, q, id).
		Scan(&p.ProductID, &p.Name, &p.Description, &p.Price, &p.QuantityInStock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.NotFound(repository.KindProduct, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get product %d: %w", id, err)
	}
	return &p, nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if !r.store.productIDs.mayContain(id) {
		return false, nil
	}

	var one int
	err := r.store.db.QueryRowContext(ctx, `SELECT 1 FROM products WHERE product_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: product exists %d: %w", id, err)
	}
	return true, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	const q = `
		INSERT INTO products (name, description, price, quantity_in_stock)
		VALUES (?, ?, ?, ?)`

	res, err := r.store.db.ExecContext(ctx, q,
		product.Name, product.Description, product.Price, product.QuantityInStock)
	if err != nil {
		return fmt.Errorf("sqlite: create product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: create product: %w", err)
	}
	product.ProductID = id
	r.store.productIDs.add(id)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	const q = `
		UPDATE products
		SET    name = ?, description = ?, price = ?, quantity_in_stock = ?
		WHERE  product_id = ?`

	res, err := r.store.db.ExecContext(ctx, q,
		product.Name, product.Description, product.Price, product.QuantityInStock, product.ProductID)
	if err != nil {
		return fmt.Errorf("sqlite: update product %d: %w", product.ProductID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: update product %d: %w", product.ProductID, err)
	}
	if affected == 0 {
		return repository.NotFound(repository.KindProduct, product.ProductID)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete product %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete product %d: %w", id, err)
	}
	if affected == 0 {
		return repository.NotFound(repository.KindProduct, id)
	}
	return nil
}
