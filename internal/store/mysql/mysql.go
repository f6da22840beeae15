// Package mysql implements store.Store on a MySQL database through database/sql.
package mysql

import (
	"database/sql"
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/xyzlearns/ShopEase1/internal/store"
)

// duplicateEntry is MySQL's ER_DUP_ENTRY.
const duplicateEntry = 1062

// Store runs every repository against one connection pool.
type Store struct {
	DB *sql.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an open pool. The schema must already be migrated.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

func isDuplicate(err error) bool {
	var myErr *mysqldrv.MySQLError
	return errors.As(err, &myErr) && myErr.Number == duplicateEntry
}
