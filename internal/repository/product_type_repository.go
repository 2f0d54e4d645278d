package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"quote-service/internal/models"

	"github.com/jmoiron/sqlx"
)

const productTypeColumns = `id, name, size, risk_category, avg_lifespan_years, common_issues,
	age_multipliers, description, image_url`

type ProductTypeRepository struct {
	db *sqlx.DB
}

func NewProductTypeRepository(db *sqlx.DB) *ProductTypeRepository {
	return &ProductTypeRepository{db: db}
}

func (r *ProductTypeRepository) List(ctx context.Context) ([]models.ProductType, error) {
	types := []models.ProductType{}
	query := `SELECT ` + productTypeColumns + ` FROM product_types ORDER BY name`

	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		slog.Error("Failed to list product types", "error", err)
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}
	return types, nil
}

// FindByName prefers an exact case-insensitive match and falls back to the
// alphabetically first substring match.
func (r *ProductTypeRepository) FindByName(ctx context.Context, name string) (*models.ProductType, error) {
	var pt models.ProductType
	query := `
		SELECT ` + productTypeColumns + `
		FROM product_types
		WHERE LOWER(name) = LOWER($1) OR LOWER(name) LIKE LOWER($2)
		ORDER BY CASE WHEN LOWER(name) = LOWER($1) THEN 0 ELSE 1 END, name
		LIMIT 1`

	err := r.db.GetContext(ctx, &pt, query, name, likePattern(name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("Product type not found", "name", name)
			return nil, fmt.Errorf("product type %q: %w", name, models.ErrNotFound)
		}
		slog.Error("Failed to find product type", "name", name, "error", err)
		return nil, fmt.Errorf("failed to find product type: %w", err)
	}
	return &pt, nil
}

func (r *ProductTypeRepository) Search(ctx context.Context, query string, limit int) ([]models.ProductType, error) {
	types := []models.ProductType{}
	sqlQuery := `
		SELECT ` + productTypeColumns + `
		FROM product_types
		WHERE LOWER(name) LIKE LOWER($1)
		ORDER BY name
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &types, sqlQuery, likePattern(query), limit); err != nil {
		slog.Error("Failed to search product types", "query", query, "error", err)
		return nil, fmt.Errorf("failed to search product types: %w", err)
	}
	return types, nil
}

func (r *ProductTypeRepository) GetByID(ctx context.Context, id int64) (*models.ProductType, error) {
	var pt models.ProductType
	query := `SELECT ` + productTypeColumns + ` FROM product_types WHERE id = $1`

	if err := r.db.GetContext(ctx, &pt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product type %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product type: %w", err)
	}
	return &pt, nil
}

// likePattern escapes LIKE wildcards in user input before wrapping it in %.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
