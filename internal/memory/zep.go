package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quote-service/internal/config"
	"quote-service/internal/models"

	"golang.org/x/time/rate"
)

// FetchStatus separates an unreachable memory store from one that simply had nothing.
type FetchStatus int

const (
	FetchUnavailable FetchStatus = iota
	FetchEmpty
	FetchFound
)

func (s FetchStatus) String() string {
	switch s {
	case FetchEmpty:
		return "empty"
	case FetchFound:
		return "found"
	default:
		return "unavailable"
	}
}

type FetchResult struct {
	Status FetchStatus
	Facts  []string
	Err    error
}

// ZepClient talks to the Zep knowledge graph over its REST API.
type ZepClient struct {
	apiKey      string
	baseURL     string
	userPrefix  string
	groupID     string
	searchQuery string
	searchLimit int
	httpClient  *http.Client
	limiter     *rate.Limiter
}

type graphSearchRequest struct {
	UserID  string `json:"user_id"`
	Query   string `json:"query"`
	Limit   int    `json:"limit"`
	Scope   string `json:"scope"`
	GroupID string `json:"group_id,omitempty"`
}

type graphSearchResponse struct {
	Edges []struct {
		UUID string `json:"uuid"`
		Fact string `json:"fact"`
	} `json:"edges"`
}

type addUserRequest struct {
	UserID string `json:"user_id"`
}

type graphAddRequest struct {
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
	Data    string `json:"data"`
	GroupID string `json:"group_id,omitempty"`
}

func NewZepClient(cfg config.ZepConfig) *ZepClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	limit := cfg.SearchLimit
	if limit <= 0 {
		limit = 15
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	perSecond := rate.Inf
	if cfg.RatePerSecond > 0 {
		perSecond = rate.Limit(cfg.RatePerSecond)
	}

	return &ZepClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		userPrefix:  cfg.UserPrefix,
		groupID:     cfg.GroupID,
		searchQuery: cfg.SearchQuery,
		searchLimit: limit,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(perSecond, burst),
	}
}

func (c *ZepClient) Configured() bool {
	return c != nil && c.apiKey != "" && c.baseURL != ""
}

// ZepUserID namespaces a site user id so several sites can share one Zep project.
func (c *ZepClient) ZepUserID(userID string) string {
	if c.userPrefix == "" {
		return userID
	}
	return c.userPrefix + "_" + userID
}

// SearchFacts fetches the user's graph edge facts. It never returns an error;
// failures collapse to FetchUnavailable with Err set for logging.
func (c *ZepClient) SearchFacts(ctx context.Context, userID string) FetchResult {
	if !c.Configured() || strings.TrimSpace(userID) == "" {
		return FetchResult{Status: FetchUnavailable}
	}

	body := graphSearchRequest{
		UserID:  c.ZepUserID(userID),
		Query:   c.searchQuery,
		Limit:   c.searchLimit,
		Scope:   "edges",
		GroupID: c.groupID,
	}

	var resp graphSearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/v2/graph/search", body, &resp); err != nil {
		slog.Warn("zep graph search failed", "user_id", body.UserID, "error", err)
		return FetchResult{Status: FetchUnavailable, Err: err}
	}

	facts := make([]string, 0, len(resp.Edges))
	for _, edge := range resp.Edges {
		if edge.Fact != "" {
			facts = append(facts, edge.Fact)
		}
	}
	if len(facts) == 0 {
		return FetchResult{Status: FetchEmpty, Facts: facts}
	}
	return FetchResult{Status: FetchFound, Facts: facts}
}

// Remember stores a conversation message in the user's graph, creating the user first if needed.
func (c *ZepClient) Remember(ctx context.Context, userID, role, message string) error {
	if !c.Configured() {
		return fmt.Errorf("%w: zep api key not configured", models.ErrUpstreamUnavailable)
	}
	if role == "" {
		role = "user"
	}
	zepUserID := c.ZepUserID(userID)

	if err := c.ensureUser(ctx, zepUserID); err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}

	body := graphAddRequest{
		UserID:  zepUserID,
		Type:    "message",
		Data:    role + ": " + message,
		GroupID: c.groupID,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v2/graph", body, nil); err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	return nil
}

func (c *ZepClient) ensureUser(ctx context.Context, zepUserID string) error {
	err := c.do(ctx, http.MethodGet, "/api/v2/users/"+url.PathEscape(zepUserID), nil, nil)
	if err == nil {
		return nil
	}
	var statusErr *statusError
	if !errors.As(err, &statusErr) || statusErr.code != http.StatusNotFound {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/v2/users", addUserRequest{UserID: zepUserID}, nil)
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("zep returned status %d: %s", e.code, e.body)
}

func (c *ZepClient) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
