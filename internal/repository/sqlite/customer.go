package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
)

// CustomerRepository is the SQLite implementation of
// repository.CustomerRepository.
type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	const q = `
		SELECT customer_id, first_name, last_name, email, contact_number
		FROM   customers
		ORDER  BY customer_id`

	rows, err := r.store.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.ContactNumber); err != nil {
			return nil, fmt.Errorf("sqlite: scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	if !r.store.customerIDs.mayContain(id) {
		return nil, repository.NotFound(repository.KindCustomer, id)
	}

	const q = `
		SELECT customer_id, first_name, last_name, email, contact_number
		FROM   customers
		WHERE  customer_id = ?`

	var c models.Customer
	err := r.store.db.QueryRowContext(ctx, q, id).
		Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.ContactNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.NotFound(repository.KindCustomer, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get customer %d: %w", id, err)
	}
	return &c, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if !r.store.customerIDs.mayContain(id) {
		return false, nil
	}

	var one int
	err := r.store.db.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE customer_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: customer exists %d: %w", id, err)
	}
	return true, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	const q = `
		INSERT INTO customers (first_name, last_name, email, contact_number)
		VALUES (?, ?, ?, ?)`

	res, err := r.store.db.ExecContext(ctx, q,
		customer.FirstName, customer.LastName, customer.Email, customer.ContactNumber)
	if err != nil {
		return fmt.Errorf("sqlite: create customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: create customer: %w", err)
	}
	customer.CustomerID = id
	r.store.customerIDs.add(id)
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM customers WHERE customer_id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete customer %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete customer %d: %w", id, err)
	}
	if affected == 0 {
		return repository.NotFound(repository.KindCustomer, id)
	}
	return nil
}
