package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"quote-service/internal/cache"
	"quote-service/internal/config"
	"quote-service/internal/models"
)

type ContentService struct {
	repo  ContentStore
	cache cache.Cache
	ttl   time.Duration
	site  config.SiteConfig
	now   func() time.Time
}

func NewContentService(repo ContentStore, c cache.Cache, ttl time.Duration, site config.SiteConfig) *ContentService {
	return &ContentService{repo: repo, cache: c, ttl: ttl, site: site, now: time.Now}
}

func (s *ContentService) GetPage(ctx context.Context, slug string) (*models.PageContent, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", models.ErrValidation)
	}

	key := cache.Key("page", slug)
	if s.cache != nil {
		var page models.PageContent
		if hit, err := cache.GetJSON(ctx, s.cache, key, &page); err == nil && hit {
			return &page, nil
		}
	}

	page, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, page, s.ttl); err != nil {
			slog.Warn("page cache write failed", "slug", slug, "error", err)
		}
	}
	return page, nil
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders the static pages followed by every published content page.
// Static pages stamp the current time as last modified.
func (s *ContentService) Sitemap(ctx context.Context) ([]byte, error) {
	base := strings.TrimSuffix(s.site.BaseURL, "/")
	now := s.now().UTC()

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	seen := make(map[string]bool)

	for _, route := range s.site.StaticPages {
		loc := base + route
		seen[loc] = true
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        loc,
			LastMod:    now.Format(time.RFC3339),
			ChangeFreq: changeFrequency(route),
			Priority:   priority(route),
		})
	}

	entries, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		route := "/" + strings.Trim(e.Slug, "/")
		loc := base + route
		if seen[loc] {
			continue
		}
		seen[loc] = true
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        loc,
			LastMod:    e.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   priority(route),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func changeFrequency(route string) string {
	if route == "" {
		return "daily"
	}
	return "weekly"
}

func priority(route string) string {
	switch {
	case route == "":
		return "1.0"
	case strings.Contains(route, "insurance"):
		return "0.9"
	default:
		return "0.7"
	}
}
