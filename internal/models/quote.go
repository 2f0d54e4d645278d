package models

import (
	"database/sql/driver"
	"time"

	"quote-service/internal/utils"

	"github.com/google/uuid"
)

// ============================================================================
// QUOTE
// ============================================================================

// Quote is an insert-only snapshot of a priced request.
type Quote struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          *string         `json:"user_id,omitempty" db:"user_id"`
	SessionID       *string         `json:"session_id,omitempty" db:"session_id"`
	ProductDetails  ProductSnapshot `json:"product_details" db:"product_details"`
	PlanType        PlanType        `json:"plan_type" db:"plan_type"`
	MonthlyPremium  int64           `json:"monthly_premium" db:"monthly_premium"`
	AnnualPremium   int64           `json:"annual_premium" db:"annual_premium"`
	CoverageDetails CoverageDetails `json:"coverage_details" db:"coverage_details"`
	PricingVersion  string          `json:"pricing_version" db:"pricing_version"`
	ValidUntil      time.Time       `json:"valid_until" db:"valid_until"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// ProductSnapshot copies the product type by value so later catalog edits never alter a quote.
type ProductSnapshot struct {
	ProductType      string       `json:"productType"`
	Size             SizeClass    `json:"size,omitempty"`
	RiskCategory     RiskCategory `json:"riskCategory"`
	Age              float64      `json:"age"`
	HasModifications bool         `json:"hasModifications"`
}

func (p ProductSnapshot) Value() (driver.Value, error) {
	return utils.MarshalJSONB(p)
}

func (p *ProductSnapshot) Scan(src any) error {
	return utils.ScanJSONB(src, p)
}

func (c CoverageDetails) Value() (driver.Value, error) {
	return utils.MarshalJSONB(c)
}

func (c *CoverageDetails) Scan(src any) error {
	return utils.ScanJSONB(src, c)
}

// ProductSummary is the product block of the quote API response.
type ProductSummary struct {
	Name         string       `json:"name"`
	Size         SizeClass    `json:"size"`
	RiskCategory RiskCategory `json:"riskCategory"`
	CommonIssues []string     `json:"commonIssues"`
}

type QuoteDetails struct {
	MonthlyPremium int64       `json:"monthlyPremium"`
	AnnualPremium  int64       `json:"annualPremium"`
	Plan           PlanSummary `json:"plan"`
	ValidUntil     time.Time   `json:"validUntil"`
}

type QuoteResponse struct {
	QuoteID uuid.UUID      `json:"quoteId"`
	Tractor ProductSummary `json:"tractor"`
	Quote   QuoteDetails   `json:"quote"`
}

type PlansResponse struct {
	Plans []PlanListing `json:"plans"`
}
