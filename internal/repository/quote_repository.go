package repository

import (
	"context"
	"fmt"
	"log/slog"

	"quote-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type QuoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	query := `
		INSERT INTO policy_quotes (
			id, user_id, session_id, product_details, plan_type, monthly_premium,
			annual_premium, coverage_details, pricing_version, valid_until, created_at
		) VALUES (
			:id, :user_id, :session_id, :product_details, :plan_type, :monthly_premium,
			:annual_premium, :coverage_details, :pricing_version, :valid_until, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, quote); err != nil {
		slog.Error("Failed to save quote", "quote_id", quote.ID, "error", err)
		return fmt.Errorf("failed to save quote: %w", err)
	}

	slog.Info("Saved quote",
		"quote_id", quote.ID,
		"plan_type", quote.PlanType,
		"monthly_premium", quote.MonthlyPremium)
	return nil
}
