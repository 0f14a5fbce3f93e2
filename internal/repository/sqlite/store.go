// Package sqlite provides SQLite-backed implementations of the
// repository contracts.
//
// The pure-Go modernc.org/sqlite driver is used instead of
// mattn/go-sqlite3 to avoid CGO requirements. WAL mode is enabled so
// readers never block the writer.
package sqlite

import (
	"database/sql"
	"fmt"

	// Register the pure-Go SQLite driver.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on Open. Idempotent due to IF NOT
// EXISTS. Foreign keys are declared without ON DELETE actions because
// the deletion workflows cascade explicitly, in application code.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name      TEXT NOT NULL,
    last_name       TEXT NOT NULL,
    email           TEXT NOT NULL,
    contact_number  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    product_id        INTEGER PRIMARY KEY AUTOINCREMENT,
    name              TEXT NOT NULL,
    description       TEXT NOT NULL DEFAULT '',
    price             REAL NOT NULL DEFAULT 0,
    quantity_in_stock INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
    order_id         INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id      INTEGER NOT NULL REFERENCES customers(customer_id),
    order_date       TEXT NOT NULL DEFAULT '',
    shipping_address TEXT NOT NULL,
    total_price      REAL NOT NULL DEFAULT 0,
    order_status     TEXT NOT NULL
);

-- Ordered many-to-many join. The same product may appear several times
-- for one order; each row is one purchased unit.
CREATE TABLE IF NOT EXISTS order_products (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id   INTEGER NOT NULL REFERENCES orders(order_id),
    product_id INTEGER NOT NULL REFERENCES products(product_id),
    position   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_products_order ON order_products(order_id, position);
`

// Store owns the database handle and the per-table id filters shared by
// the entity repositories.
type Store struct {
	db *sql.DB

	customerIDs *idFilter
	productIDs  *idFilter
	orderIDs    *idFilter
}

// Open opens (or creates) the SQLite database at the given path,
// applies the schema and seeds the id filters.
//
//	store, err := sqlite.Open("./data/commerce.db")
func Open(path string) (*Store, error) {
	// WAL enables concurrent readers. busy_timeout waits for locks
	// instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	s := &Store{db: db}
	if s.customerIDs, err = seedFilter(db, "customers", "customer_id"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if s.productIDs, err = seedFilter(db, "products", "product_id"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if s.orderIDs, err = seedFilter(db, "orders", "order_id"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database connection. Call it with defer in main().
func (s *Store) Close() error {
	return s.db.Close()
}

// Customers returns the customer repository bound to this store.
func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

// Products returns the product repository bound to this store.
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

// Orders returns the order repository bound to this store.
func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s}
}
