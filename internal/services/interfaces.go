package services

import (
	"context"

	"quote-service/internal/event"
	"quote-service/internal/memory"
	"quote-service/internal/models"
)

type ProductTypeStore interface {
	List(ctx context.Context) ([]models.ProductType, error)
	FindByName(ctx context.Context, name string) (*models.ProductType, error)
	Search(ctx context.Context, query string, limit int) ([]models.ProductType, error)
	GetByID(ctx context.Context, id int64) (*models.ProductType, error)
}

type QuoteStore interface {
	Create(ctx context.Context, quote *models.Quote) error
}

type ContentStore interface {
	GetPublishedBySlug(ctx context.Context, slug string) (*models.PageContent, error)
	ListPublished(ctx context.Context) ([]models.SitemapEntry, error)
}

type UserStore interface {
	ListMachines(ctx context.Context, userID string) ([]models.UserMachine, error)
	AddMachine(ctx context.Context, machine *models.UserMachine) error
	ListPolicies(ctx context.Context, userID string) ([]models.InsurancePolicy, error)
}

type QuoteEventPublisher interface {
	PublishQuoteCreated(ctx context.Context, event event.QuoteCreatedEvent) error
}

// FactSource is the knowledge-graph client as seen by the memory service.
type FactSource interface {
	SearchFacts(ctx context.Context, userID string) memory.FetchResult
	Remember(ctx context.Context, userID, role, message string) error
}
