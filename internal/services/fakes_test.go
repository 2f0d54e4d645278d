package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"quote-service/internal/event"
	"quote-service/internal/memory"
	"quote-service/internal/models"
)

type fakeProductTypes struct {
	mu    sync.Mutex
	types []models.ProductType
	calls int
	err   error
}

func (f *fakeProductTypes) List(ctx context.Context) ([]models.ProductType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.types, f.err
}

func (f *fakeProductTypes) FindByName(ctx context.Context, name string) (*models.ProductType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, pt := range f.types {
		if strings.EqualFold(pt.Name, name) {
			found := pt
			return &found, nil
		}
	}
	for _, pt := range f.types {
		if strings.Contains(strings.ToLower(pt.Name), strings.ToLower(name)) {
			found := pt
			return &found, nil
		}
	}
	return nil, fmt.Errorf("product type %q: %w", name, models.ErrNotFound)
}

func (f *fakeProductTypes) GetByID(ctx context.Context, id int64) (*models.ProductType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, pt := range f.types {
		if pt.ID == id {
			found := pt
			return &found, nil
		}
	}
	return nil, fmt.Errorf("product type %d: %w", id, models.ErrNotFound)
}

func (f *fakeProductTypes) Search(ctx context.Context, query string, limit int) ([]models.ProductType, error) {
	out := []models.ProductType{}
	for _, pt := range f.types {
		if strings.Contains(strings.ToLower(pt.Name), strings.ToLower(query)) && len(out) < limit {
			out = append(out, pt)
		}
	}
	return out, nil
}

type fakeQuotes struct {
	saved []models.Quote
	err   error
}

func (f *fakeQuotes) Create(ctx context.Context, quote *models.Quote) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *quote)
	return nil
}

type fakePublisher struct {
	events []event.QuoteCreatedEvent
	err    error
}

func (f *fakePublisher) PublishQuoteCreated(ctx context.Context, evt event.QuoteCreatedEvent) error {
	f.events = append(f.events, evt)
	return f.err
}

type fakeFacts struct {
	result     memory.FetchResult
	rememberFn func(userID, role, message string) error
	searched   []string
}

func (f *fakeFacts) SearchFacts(ctx context.Context, userID string) memory.FetchResult {
	f.searched = append(f.searched, userID)
	return f.result
}

func (f *fakeFacts) Remember(ctx context.Context, userID, role, message string) error {
	if f.rememberFn == nil {
		return nil
	}
	return f.rememberFn(userID, role, message)
}

type fakeContent struct {
	pages   map[string]models.PageContent
	entries []models.SitemapEntry
	calls   int
}

func (f *fakeContent) GetPublishedBySlug(ctx context.Context, slug string) (*models.PageContent, error) {
	f.calls++
	page, ok := f.pages[slug]
	if !ok {
		return nil, fmt.Errorf("page %q: %w", slug, models.ErrNotFound)
	}
	return &page, nil
}

func (f *fakeContent) ListPublished(ctx context.Context) ([]models.SitemapEntry, error) {
	return f.entries, nil
}

type fakeUsers struct {
	machines []models.UserMachine
	policies []models.InsurancePolicy
	err      error
}

func (f *fakeUsers) ListMachines(ctx context.Context, userID string) ([]models.UserMachine, error) {
	out := []models.UserMachine{}
	for _, m := range f.machines {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeUsers) AddMachine(ctx context.Context, machine *models.UserMachine) error {
	if f.err != nil {
		return f.err
	}
	machine.ID = int64(len(f.machines) + 1)
	f.machines = append(f.machines, *machine)
	return nil
}

func (f *fakeUsers) ListPolicies(ctx context.Context, userID string) ([]models.InsurancePolicy, error) {
	return f.policies, nil
}

func tractorCatalog() []models.ProductType {
	return []models.ProductType{
		{ID: 1, Name: "Compact Tractor", Size: models.SizeCompact, RiskCategory: models.RiskLow, CommonIssues: []string{"hydraulic leaks"}},
		{ID: 2, Name: "Utility Tractor", Size: models.SizeUtility, RiskCategory: models.RiskMedium},
		{ID: 3, Name: "Vintage Tractor", Size: models.SizeStandard, RiskCategory: models.RiskHigh, CommonIssues: []string{"parts scarcity"}},
	}
}
