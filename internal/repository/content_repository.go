package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"quote-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type ContentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.PageContent, error) {
	var page models.PageContent
	query := `
		SELECT slug, title, description, keywords, content, meta, updated_at
		FROM page_content
		WHERE slug = $1 AND published = TRUE`

	if err := r.db.GetContext(ctx, &page, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("Page content not found", "slug", slug)
			return nil, fmt.Errorf("page %q: %w", slug, models.ErrNotFound)
		}
		slog.Error("Failed to get page content", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}
	return &page, nil
}

func (r *ContentRepository) ListPublished(ctx context.Context) ([]models.SitemapEntry, error) {
	entries := []models.SitemapEntry{}
	query := `SELECT slug, updated_at FROM page_content WHERE published = TRUE ORDER BY slug`

	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		slog.Error("Failed to list published pages", "error", err)
		return nil, fmt.Errorf("failed to list published pages: %w", err)
	}
	return entries, nil
}
