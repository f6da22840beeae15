package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xyzlearns/ShopEase1/internal/models"
	"github.com/xyzlearns/ShopEase1/internal/store"
)

const productColumns = "id, name, price, category, rating, image, description"

func (s *Store) SeedProducts(ctx context.Context, products []models.Product) error {
	if err := store.CheckProducts(products); err != nil {
		return err
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (name, price, category, rating, image, description)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, p := range products {
		if _, err := tx.ExecContext(ctx, query, p.Name, p.Price, p.Category, p.Rating, p.Image, p.Description); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
}

func (s *Store) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.queryProducts(ctx, "SELECT "+productColumns+" FROM products WHERE category = ? ORDER BY id", category)
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.DB.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Rating, &p.Image, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Rating, &p.Image, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
