package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// idFilter short-circuits existence checks for ids that were never
// issued. A negative Test is a definite miss and skips the SQL query;
// a positive Test means "maybe" and callers fall through to the real
// query. Deleted ids stay in the filter, which only costs that
// fallthrough.
type idFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

const filterCapacity = 1 << 20

func newIDFilter() *idFilter {
	return &idFilter{filter: bloom.NewWithEstimates(filterCapacity, 0.01)}
}

func (f *idFilter) add(id int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))

	f.mu.Lock()
	f.filter.Add(buf[:])
	f.mu.Unlock()
}

func (f *idFilter) mayContain(id int64) bool {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.Test(buf[:])
}

// seedFilter loads every existing id of the given table on startup.
func seedFilter(db *sql.DB, table, column string) (*idFilter, error) {
	f := newIDFilter()

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s", column, table))
	if err != nil {
		return nil, fmt.Errorf("sqlite: seed id filter for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: seed id filter for %s: %w", table, err)
		}
		f.add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: seed id filter for %s: %w", table, err)
	}

	return f, nil
}
