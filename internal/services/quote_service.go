package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"quote-service/internal/event"
	"quote-service/internal/metrics"
	"quote-service/internal/models"
	"quote-service/internal/pricing"

	"github.com/google/uuid"
)

type QuoteService struct {
	productTypes *ProductTypeService
	quotes       QuoteStore
	pricing      *pricing.Store
	publisher    QuoteEventPublisher
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewQuoteService builds the service. publisher may be nil when events are disabled.
func NewQuoteService(productTypes *ProductTypeService, quotes QuoteStore, store *pricing.Store, publisher QuoteEventPublisher, m *metrics.Metrics) *QuoteService {
	return &QuoteService{
		productTypes: productTypes,
		quotes:       quotes,
		pricing:      store,
		publisher:    publisher,
		metrics:      m,
		now:          time.Now,
	}
}

// Plans lists the configured plan tiers in configuration order.
func (s *QuoteService) Plans() models.PlansResponse {
	cfg := s.pricing.Current()
	plans := make([]models.PlanListing, 0, len(cfg.Plans))
	for _, p := range cfg.Plans {
		plans = append(plans, p.Listing())
	}
	return models.PlansResponse{Plans: plans}
}

// CreateQuote resolves the product type, prices the request and saves a snapshot.
// Callers validate the request first.
func (s *QuoteService) CreateQuote(ctx context.Context, req models.CreateQuoteRequest) (*models.QuoteResponse, error) {
	name := req.ResolvedProductTypeName()
	if name == "" || req.AgeYears == nil || req.PlanType == "" {
		s.metrics.RecordQuoteFailure("validation")
		return nil, fmt.Errorf("%w: productTypeName, ageYears and planType are required", models.ErrValidation)
	}

	productType, err := s.productTypes.FindByName(ctx, name)
	if err != nil {
		s.metrics.RecordQuoteFailure(failureReason(err))
		return nil, err
	}

	cfg := s.pricing.Current()
	result, err := pricing.Calculate(cfg, *productType, *req.AgeYears, req.PlanType, req.Modified())
	if err != nil {
		s.metrics.RecordQuoteFailure(failureReason(err))
		return nil, err
	}

	quote := &models.Quote{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		ProductDetails: models.ProductSnapshot{
			ProductType:      productType.Name,
			Size:             productType.Size,
			RiskCategory:     productType.RiskCategory,
			Age:              *req.AgeYears,
			HasModifications: req.Modified(),
		},
		PlanType:        result.Plan.Type,
		MonthlyPremium:  result.MonthlyPremium,
		AnnualPremium:   result.AnnualPremium,
		CoverageDetails: result.Plan.Coverage,
		PricingVersion:  result.PricingVersion,
	}

	quoteID, err := s.SaveQuote(ctx, quote, cfg.QuoteValidityDays)
	if err != nil {
		s.metrics.RecordQuoteFailure("persistence")
		return nil, err
	}
	s.metrics.RecordQuote(string(result.Plan.Type), string(productType.RiskCategory))

	slog.Info("Quote calculated",
		"quote_id", quoteID,
		"product_type", productType.Name,
		"plan_type", result.Plan.Type,
		"age_bracket", result.Breakdown.AgeBracket,
		"monthly_premium", result.MonthlyPremium,
		"pricing_version", result.PricingVersion)

	s.publishCreated(ctx, quote)

	commonIssues := []string(productType.CommonIssues)
	if commonIssues == nil {
		commonIssues = []string{}
	}

	return &models.QuoteResponse{
		QuoteID: quoteID,
		Tractor: models.ProductSummary{
			Name:         productType.Name,
			Size:         productType.Size,
			RiskCategory: productType.RiskCategory,
			CommonIssues: commonIssues,
		},
		Quote: models.QuoteDetails{
			MonthlyPremium: result.MonthlyPremium,
			AnnualPremium:  result.AnnualPremium,
			Plan:           result.Plan.Summary(),
			ValidUntil:     quote.ValidUntil,
		},
	}, nil
}

// SaveQuote assigns the id and validity window and persists the snapshot.
// Storage failures are returned as ErrPersistence and never retried.
func (s *QuoteService) SaveQuote(ctx context.Context, quote *models.Quote, validityDays int) (uuid.UUID, error) {
	now := s.now().UTC()
	quote.ID = uuid.New()
	quote.CreatedAt = now
	quote.ValidUntil = now.AddDate(0, 0, validityDays)

	if err := s.quotes.Create(ctx, quote); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return quote.ID, nil
}

func (s *QuoteService) publishCreated(ctx context.Context, quote *models.Quote) {
	if s.publisher == nil {
		return
	}

	evt := event.QuoteCreatedEvent{
		EventID:        uuid.New(),
		QuoteID:        quote.ID,
		UserID:         quote.UserID,
		SessionID:      quote.SessionID,
		ProductType:    quote.ProductDetails.ProductType,
		PlanType:       string(quote.PlanType),
		MonthlyPremium: quote.MonthlyPremium,
		AnnualPremium:  quote.AnnualPremium,
		PricingVersion: quote.PricingVersion,
		ValidUntil:     quote.ValidUntil,
		OccurredAt:     quote.CreatedAt,
	}
	err := s.publisher.PublishQuoteCreated(ctx, evt)
	s.metrics.RecordQuoteEvent(err == nil)
	if err != nil {
		slog.Error("failed to publish quote created event", "quote_id", quote.ID, "error", err)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		return "validation"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
