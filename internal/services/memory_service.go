package services

import (
	"context"
	"log/slog"
	"strings"

	"quote-service/internal/memory"
	"quote-service/internal/metrics"
	"quote-service/internal/models"
)

type MemoryContextService struct {
	facts   FactSource
	metrics *metrics.Metrics
}

func NewMemoryContextService(facts FactSource, m *metrics.Metrics) *MemoryContextService {
	return &MemoryContextService{facts: facts, metrics: m}
}

// Context always returns a well-formed payload; an unreachable memory store
// yields the empty context.
func (s *MemoryContextService) Context(ctx context.Context, userID string) models.MemoryContext {
	if strings.TrimSpace(userID) == "" {
		s.metrics.RecordMemoryFetch(memory.FetchUnavailable.String())
		return models.EmptyMemoryContext()
	}

	res := s.facts.SearchFacts(ctx, userID)
	s.metrics.RecordMemoryFetch(res.Status.String())

	if res.Status != memory.FetchFound {
		return models.EmptyMemoryContext()
	}
	return memory.BuildContext(res.Facts)
}

func (s *MemoryContextService) Remember(ctx context.Context, req models.RememberRequest) models.RememberResponse {
	err := s.facts.Remember(ctx, req.UserID, req.Role, req.Message)
	s.metrics.RecordMemoryStore(err == nil)
	if err != nil {
		slog.Warn("failed to store message in memory", "user_id", req.UserID, "error", err)
		return models.RememberResponse{Stored: false}
	}
	return models.RememberResponse{Stored: true}
}
