package models

import (
	"time"

	"quote-service/internal/utils"

	"github.com/lib/pq"
)

type PageContent struct {
	Slug        string         `json:"slug" db:"slug"`
	Title       string         `json:"title" db:"title"`
	Description *string        `json:"description,omitempty" db:"description"`
	Keywords    pq.StringArray `json:"keywords" db:"keywords"`
	Content     string         `json:"content" db:"content"`
	Meta        utils.JSONMap  `json:"meta,omitempty" db:"meta"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// SitemapEntry is one published URL and when it last changed.
type SitemapEntry struct {
	Slug      string    `db:"slug"`
	UpdatedAt time.Time `db:"updated_at"`
}
