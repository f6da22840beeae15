package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xyzlearns/ShopEase1/internal/models"
)

// ListForSession joins each line with its product. The inner join drops
// lines whose product has disappeared.
func (s *Store) ListForSession(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	query := `
		SELECT
			ci.id, ci.product_id, ci.quantity, ci.session_id,
			p.id, p.name, p.price, p.category, p.rating, p.image, p.description
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.session_id = ?
		ORDER BY ci.id`

	rows, err := s.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(
			&it.ID, &it.ProductID, &it.Quantity, &it.SessionID,
			&it.Product.ID, &it.Product.Name, &it.Product.Price, &it.Product.Category,
			&it.Product.Rating, &it.Product.Image, &it.Product.Description,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddLine merges into an existing (session, product) line or inserts a new one.
// No row lock is taken; concurrent adds race at commit.
func (s *Store) AddLine(ctx context.Context, sessionID string, productID int64, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		quantity = 1
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin add line: %w", err)
	}
	defer tx.Rollback()

	line := models.CartLine{ProductID: productID, SessionID: sessionID}
	err = tx.QueryRowContext(ctx,
		"SELECT id, quantity FROM cart_items WHERE session_id = ? AND product_id = ? LIMIT 1",
		sessionID, productID).Scan(&line.ID, &line.Quantity)

	switch {
	case err == nil:
		line.Quantity += quantity
		if _, err := tx.ExecContext(ctx, "UPDATE cart_items SET quantity = ? WHERE id = ?", line.Quantity, line.ID); err != nil {
			return nil, fmt.Errorf("merge cart line: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		line.Quantity = quantity
		result, err := tx.ExecContext(ctx,
			"INSERT INTO cart_items (product_id, quantity, session_id) VALUES (?, ?, ?)",
			productID, quantity, sessionID)
		if err != nil {
			return nil, fmt.Errorf("insert cart line: %w", err)
		}
		if line.ID, err = result.LastInsertId(); err != nil {
			return nil, fmt.Errorf("cart line id: %w", err)
		}
	default:
		return nil, fmt.Errorf("find cart line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add line: %w", err)
	}
	return &line, nil
}

func (s *Store) UpdateQuantity(ctx context.Context, sessionID string, lineID int64, quantity int) (*models.CartLine, error) {
	if _, err := s.DB.ExecContext(ctx,
		"UPDATE cart_items SET quantity = ? WHERE id = ? AND session_id = ?", quantity, lineID, sessionID); err != nil {
		return nil, fmt.Errorf("update cart line %d: %w", lineID, err)
	}

	// RowsAffected is 0 for an unchanged value, so existence is checked by reading back.
	var line models.CartLine
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, product_id, quantity, session_id FROM cart_items WHERE id = ? AND session_id = ?", lineID, sessionID).
		Scan(&line.ID, &line.ProductID, &line.Quantity, &line.SessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart line %d: %w", lineID, err)
	}
	return &line, nil
}

func (s *Store) RemoveLine(ctx context.Context, sessionID string, lineID int64) (bool, error) {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM cart_items WHERE id = ? AND session_id = ?", lineID, sessionID)
	if err != nil {
		return false, fmt.Errorf("delete cart line %d: %w", lineID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM cart_items WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
