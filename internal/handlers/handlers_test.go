package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quote-service/internal/config"
	"quote-service/internal/memory"
	"quote-service/internal/metrics"
	"quote-service/internal/models"
	"quote-service/internal/pricing"
	"quote-service/internal/services"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FAKES
// ============================================================================

type stubProductTypes struct{ types []models.ProductType }

func (s *stubProductTypes) List(ctx context.Context) ([]models.ProductType, error) {
	return s.types, nil
}

func (s *stubProductTypes) FindByName(ctx context.Context, name string) (*models.ProductType, error) {
	for _, pt := range s.types {
		if strings.EqualFold(pt.Name, name) {
			found := pt
			return &found, nil
		}
	}
	return nil, fmt.Errorf("product type %q: %w", name, models.ErrNotFound)
}

func (s *stubProductTypes) GetByID(ctx context.Context, id int64) (*models.ProductType, error) {
	for _, pt := range s.types {
		if pt.ID == id {
			found := pt
			return &found, nil
		}
	}
	return nil, fmt.Errorf("product type %d: %w", id, models.ErrNotFound)
}

func (s *stubProductTypes) Search(ctx context.Context, query string, limit int) ([]models.ProductType, error) {
	out := []models.ProductType{}
	for _, pt := range s.types {
		if strings.Contains(strings.ToLower(pt.Name), strings.ToLower(query)) && len(out) < limit {
			out = append(out, pt)
		}
	}
	return out, nil
}

type stubQuotes struct{ err error }

func (s *stubQuotes) Create(ctx context.Context, quote *models.Quote) error { return s.err }

type stubFacts struct{ result memory.FetchResult }

func (s *stubFacts) SearchFacts(ctx context.Context, userID string) memory.FetchResult {
	return s.result
}

func (s *stubFacts) Remember(ctx context.Context, userID, role, message string) error {
	if userID == "offline" {
		return models.ErrUpstreamUnavailable
	}
	return nil
}

type stubContent struct{}

func (stubContent) GetPublishedBySlug(ctx context.Context, slug string) (*models.PageContent, error) {
	if slug != "tractor-insurance" {
		return nil, fmt.Errorf("page %q: %w", slug, models.ErrNotFound)
	}
	return &models.PageContent{Slug: slug, Title: "Tractor Insurance UK", Keywords: []string{"tractor"}}, nil
}

func (stubContent) ListPublished(ctx context.Context) ([]models.SitemapEntry, error) {
	return []models.SitemapEntry{{Slug: "tractor-insurance", UpdatedAt: time.Now()}}, nil
}

type stubUsers struct{ machines []models.UserMachine }

func (s *stubUsers) ListMachines(ctx context.Context, userID string) ([]models.UserMachine, error) {
	out := []models.UserMachine{}
	for _, m := range s.machines {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubUsers) AddMachine(ctx context.Context, machine *models.UserMachine) error {
	machine.ID = int64(len(s.machines) + 1)
	s.machines = append(s.machines, *machine)
	return nil
}

func (s *stubUsers) ListPolicies(ctx context.Context, userID string) ([]models.InsurancePolicy, error) {
	return []models.InsurancePolicy{}, nil
}

type testEnv struct {
	app    *fiber.App
	quotes *stubQuotes
	facts  *stubFacts
}

func newTestApp(t *testing.T) testEnv {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	catalog := &stubProductTypes{types: []models.ProductType{
		{ID: 1, Name: "Compact Tractor", Size: models.SizeCompact, RiskCategory: models.RiskLow, CommonIssues: []string{"hydraulic leaks"}},
		{ID: 2, Name: "Vintage Tractor", Size: models.SizeStandard, RiskCategory: models.RiskHigh},
	}}
	quotes := &stubQuotes{}
	facts := &stubFacts{result: memory.FetchResult{Status: memory.FetchUnavailable}}

	productTypeService := services.NewProductTypeService(catalog, nil, time.Minute, m)
	quoteService := services.NewQuoteService(productTypeService, quotes, pricing.NewStaticStore(pricing.DefaultConfig()), nil, m)
	memoryService := services.NewMemoryContextService(facts, m)
	contentService := services.NewContentService(stubContent{}, nil, time.Minute, config.SiteConfig{
		BaseURL:     "https://tractorinsurance.quest",
		StaticPages: []string{""},
	})
	userService := services.NewUserService(&stubUsers{}, productTypeService)

	app := fiber.New()
	app.Use(RequestMetrics(m))
	NewHealthHandler(reg).Register(app)
	NewQuoteHandler(quoteService).Register(app)
	NewProductTypeHandler(productTypeService).Register(app)
	NewMemoryHandler(memoryService).Register(app)
	NewContentHandler(contentService).Register(app)
	NewUserHandler(userService).Register(app)

	return testEnv{app: app, quotes: quotes, facts: facts}
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, headers map[string]string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

// ============================================================================
// QUOTE
// ============================================================================

func TestCreateQuoteHandler(t *testing.T) {
	env := newTestApp(t)

	status, body := doRequest(t, env.app, http.MethodPost, "/api/quote",
		`{"tractorType":"Compact Tractor","ageYears":5,"planType":"standard","sessionId":"s-1"}`, nil)
	require.Equal(t, http.StatusOK, status, body)

	var resp models.QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.NotEqual(t, uuid.Nil, resp.QuoteID)
	assert.Equal(t, int64(75), resp.Quote.MonthlyPremium)
	assert.Equal(t, int64(900), resp.Quote.AnnualPremium)
	assert.Equal(t, "Compact Tractor", resp.Tractor.Name)
	assert.Equal(t, "Tractor Standard", resp.Quote.Plan.Name)
}

func TestCreateQuoteHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
		code     string
	}{
		{"malformed json", `{"ageYears":`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing product type", `{"ageYears":1,"planType":"basic"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"missing age", `{"productTypeName":"Compact Tractor","planType":"basic"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"negative age", `{"productTypeName":"Compact Tractor","ageYears":-1,"planType":"basic"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unknown product type", `{"productTypeName":"Combine","ageYears":1,"planType":"basic"}`, http.StatusNotFound, "NOT_FOUND"},
		{"unknown plan", `{"productTypeName":"Compact Tractor","ageYears":1,"planType":"gold"}`, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestApp(t)
			status, body := doRequest(t, env.app, http.MethodPost, "/api/quote", tt.body, nil)

			assert.Equal(t, tt.expected, status, body)
			assert.Contains(t, body, `"success":false`)
			assert.Contains(t, body, tt.code)
		})
	}
}

func TestCreateQuoteHandler_PersistenceFailure(t *testing.T) {
	env := newTestApp(t)
	env.quotes.err = fmt.Errorf("connection reset")

	status, body := doRequest(t, env.app, http.MethodPost, "/api/quote",
		`{"productTypeName":"Compact Tractor","ageYears":1,"planType":"basic"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL_ERROR")
	assert.NotContains(t, body, "connection reset")
}

func TestGetPlansHandler(t *testing.T) {
	env := newTestApp(t)

	status, body := doRequest(t, env.app, http.MethodGet, "/api/quote", "", nil)
	require.Equal(t, http.StatusOK, status)

	var resp models.PlansResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Plans, 4)
	assert.Equal(t, 150.0, resp.Plans[2].BaseMonthlyPremium)
}

// ============================================================================
// PRODUCT TYPES
// ============================================================================

func TestProductTypesHandler(t *testing.T) {
	env := newTestApp(t)

	for _, path := range []string{"/api/tractor-types", "/api/breeds"} {
		status, body := doRequest(t, env.app, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, status)
		var all []models.ProductType
		require.NoError(t, json.Unmarshal([]byte(body), &all))
		assert.Len(t, all, 2)
	}

	status, body := doRequest(t, env.app, http.MethodGet, "/api/tractor-types?name=vintage%20tractor", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"name":"Vintage Tractor"`)

	status, _ = doRequest(t, env.app, http.MethodGet, "/api/tractor-types?name=combine", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doRequest(t, env.app, http.MethodGet, "/api/breeds?search=compact", "", nil)
	require.Equal(t, http.StatusOK, status)
	var found []models.ProductType
	require.NoError(t, json.Unmarshal([]byte(body), &found))
	assert.Len(t, found, 1)
}

// ============================================================================
// MEMORY CONTEXT
// ============================================================================

func TestZepContextHandler_EmptyPayload(t *testing.T) {
	env := newTestApp(t)

	for _, target := range []string{"/api/zep-context", "/api/zep-context?userId=u-1"} {
		status, body := doRequest(t, env.app, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t,
			`{"context":"","facts":[],"entities":{"types":[],"names":[],"ages":[],"conditions":[],"insurance":[]}}`,
			body)
	}
}

func TestZepContextHandler_Facts(t *testing.T) {
	env := newTestApp(t)
	env.facts.result = memory.FetchResult{Status: memory.FetchFound, Facts: []string{"User wants the premium plan"}}

	status, body := doRequest(t, env.app, http.MethodGet, "/api/zep-context?userId=u-1", "", nil)
	require.Equal(t, http.StatusOK, status)

	var resp models.MemoryContext
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "Insurance Interest: the premium plan", resp.Context)
	assert.Equal(t, []string{"the premium plan"}, resp.Entities.Insurance)
}

func TestZepContextHandler_Remember(t *testing.T) {
	env := newTestApp(t)

	status, body := doRequest(t, env.app, http.MethodPost, "/api/zep-context", `{"userId":"u-1","message":"hello"}`, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"stored":true}`, body)

	status, body = doRequest(t, env.app, http.MethodPost, "/api/zep-context", `{"userId":"offline","message":"hello"}`, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"stored":false}`, body)

	status, _ = doRequest(t, env.app, http.MethodPost, "/api/zep-context", `{"userId":"u-1","message":"hi","role":"system"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doRequest(t, env.app, http.MethodPost, "/api/zep-context", `{"userId":"abc?limit=1000","message":"hi"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "VALIDATION_FAILED")
}

// ============================================================================
// CONTENT, USERS, HEALTH
// ============================================================================

func TestContentHandler(t *testing.T) {
	env := newTestApp(t)

	status, body := doRequest(t, env.app, http.MethodGet, "/api/content?slug=tractor-insurance", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"title":"Tractor Insurance UK"`)

	status, _ = doRequest(t, env.app, http.MethodGet, "/api/content", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, env.app, http.MethodGet, "/api/content?slug=nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSitemapHandler(t *testing.T) {
	env := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	data, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(data), "<loc>https://tractorinsurance.quest/tractor-insurance</loc>")
}

func TestUserHandler(t *testing.T) {
	env := newTestApp(t)
	user := map[string]string{"X-User-ID": "user-9"}

	status, _ := doRequest(t, env.app, http.MethodGet, "/api/users/me/tractors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := doRequest(t, env.app, http.MethodPost, "/api/users/me/tractors",
		`{"name":"Big Red","type_name":"compact tractor","age_years":3}`, user)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Contains(t, body, `"type_name":"Compact Tractor"`)

	status, _ = doRequest(t, env.app, http.MethodPost, "/api/users/me/tractors", `{"name":"","type_name":"x"}`, user)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doRequest(t, env.app, http.MethodPost, "/api/users/me/tractors",
		`{"name":"Ghost","type_id":999,"type_name":"Phantom"}`, user)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "type_id 999 does not exist")

	status, body = doRequest(t, env.app, http.MethodGet, "/api/users/me/tractors", "", user)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"count":1`)

	status, body = doRequest(t, env.app, http.MethodGet, "/api/users/me/policies", "", user)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"data":[]`)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestApp(t)

	status, body := doRequest(t, env.app, http.MethodGet, "/checkhealth", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Quote service is healthy", body)

	doRequest(t, env.app, http.MethodGet, "/api/quote", "", nil)

	status, body = doRequest(t, env.app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "quote_service_http_request_duration_seconds")
}
