package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Pool settings for OpenDBWithDSN.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool mirrors the settings the API has always run with.
var DefaultPool = PoolConfig{MaxOpenConns: 25, MaxIdleConns: 25, ConnMaxLifetime: 5 * time.Minute}

// OpenDBWithDSN creates and configures a MySQL connection pool and pings it.
// The DSN should carry parseTime=true so DATETIME columns scan into time.Time.
func OpenDBWithDSN(ctx context.Context, dsn string, pool PoolConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int("max_open_conns", pool.MaxOpenConns))
	return db, nil
}

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(12,2) NOT NULL,
		category VARCHAR(100) NOT NULL,
		rating DOUBLE NOT NULL DEFAULT 0,
		image TEXT NOT NULL,
		description TEXT NOT NULL,
		INDEX idx_products_category (category)
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		session_id VARCHAR(255) NOT NULL,
		INDEX idx_cart_items_session (session_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NULL,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		customer_address TEXT NOT NULL,
		customer_city VARCHAR(255) NOT NULL,
		customer_state VARCHAR(255) NOT NULL,
		customer_zip VARCHAR(32) NOT NULL,
		items JSON NOT NULL,
		subtotal DECIMAL(12,2) NOT NULL,
		tax DECIMAL(12,2) NOT NULL,
		total DECIMAL(12,2) NOT NULL,
		payment_screenshot_url TEXT NULL,
		payment_backup_url TEXT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL,
		INDEX idx_orders_user (user_id)
	)`,
}

// Migrate creates the storefront tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
