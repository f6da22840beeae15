package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xyzlearns/ShopEase1/internal/models"
	"github.com/xyzlearns/ShopEase1/internal/store"
)

const orderColumns = `id, user_id, customer_name, customer_email, customer_address,
	customer_city, customer_state, customer_zip, items, subtotal, tax, total,
	payment_screenshot_url, payment_backup_url, status, created_at`

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if err := store.CheckOrder(order); err != nil {
		return err
	}

	query := `
		INSERT INTO orders (user_id, customer_name, customer_email, customer_address,
			customer_city, customer_state, customer_zip, items, subtotal, tax, total,
			payment_screenshot_url, payment_backup_url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.DB.ExecContext(ctx, query,
		order.UserID, order.CustomerName, order.CustomerEmail, order.CustomerAddress,
		order.CustomerCity, order.CustomerState, order.CustomerZip, string(items),
		order.Subtotal, order.Tax, order.Total,
		order.PaymentScreenshotURL, order.PaymentBackupURL, string(order.Status), order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	order.ID = id
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.queryOrders(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY id")
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.queryOrders(ctx, "SELECT "+orderColumns+" FROM orders WHERE user_id = ? ORDER BY id", userID)
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*models.Order, error) {
	var (
		o                models.Order
		userID           sql.NullInt64
		items            []byte
		proofURL, backup sql.NullString
		status           string
	)
	if err := row.Scan(
		&o.ID, &userID, &o.CustomerName, &o.CustomerEmail, &o.CustomerAddress,
		&o.CustomerCity, &o.CustomerState, &o.CustomerZip, &items,
		&o.Subtotal, &o.Tax, &o.Total, &proofURL, &backup, &status, &o.CreatedAt,
	); err != nil {
		return nil, err
	}

	if userID.Valid {
		o.UserID = &userID.Int64
	}
	if proofURL.Valid {
		o.PaymentScreenshotURL = &proofURL.String
	}
	if backup.Valid {
		o.PaymentBackupURL = &backup.String
	}
	o.Status = models.OrderStatus(status)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}
