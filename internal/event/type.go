package event

import (
	"time"

	"github.com/google/uuid"
)

const QuoteCreatedQueue = "quote_created_events"

// QuoteCreatedEvent lets downstream lead handling follow up on a saved quote.
type QuoteCreatedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	QuoteID        uuid.UUID `json:"quote_id"`
	UserID         *string   `json:"user_id,omitempty"`
	SessionID      *string   `json:"session_id,omitempty"`
	ProductType    string    `json:"product_type"`
	PlanType       string    `json:"plan_type"`
	MonthlyPremium int64     `json:"monthly_premium"`
	AnnualPremium  int64     `json:"annual_premium"`
	PricingVersion string    `json:"pricing_version"`
	ValidUntil     time.Time `json:"valid_until"`
	OccurredAt     time.Time `json:"occurred_at"`
}
