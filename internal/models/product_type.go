package models

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"quote-service/internal/utils"

	"github.com/lib/pq"
)

// ============================================================================
// PRODUCT TYPE (TRACTOR TYPE / BREED)
// ============================================================================

type ProductType struct {
	ID               int64          `json:"id" db:"id"`
	Name             string         `json:"name" db:"name"`
	Size             SizeClass      `json:"size" db:"size"`
	RiskCategory     RiskCategory   `json:"risk_category" db:"risk_category"`
	AvgLifespanYears *int           `json:"avg_lifespan_years,omitempty" db:"avg_lifespan_years"`
	CommonIssues     pq.StringArray `json:"common_issues" db:"common_issues"`
	AgeMultipliers   AgeTable       `json:"age_multipliers,omitempty" db:"age_multipliers"`
	Description      *string        `json:"description,omitempty" db:"description"`
	ImageURL         *string        `json:"image_url,omitempty" db:"image_url"`
}

// AgeBracket applies Multiplier to every age >= MinAge up to the next bracket.
type AgeBracket struct {
	Label      string  `json:"label" yaml:"label"`
	MinAge     float64 `json:"min_age" yaml:"min_age"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// AgeTable is stored as jsonb; NULL scans to an empty table.
type AgeTable []AgeBracket

func (t AgeTable) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return utils.MarshalJSONB(t)
}

func (t *AgeTable) Scan(src any) error {
	*t = nil
	return utils.ScanJSONB(src, t)
}

// Validate checks brackets are ascending by MinAge and carry positive multipliers.
func (t AgeTable) Validate() error {
	for i, b := range t {
		if b.MinAge < 0 {
			return fmt.Errorf("age bracket %d: min_age cannot be negative", i)
		}
		if b.Multiplier <= 0 {
			return fmt.Errorf("age bracket %d: multiplier must be positive", i)
		}
		if i > 0 && b.MinAge <= t[i-1].MinAge {
			return errors.New("age brackets must be strictly ascending by min_age")
		}
	}
	return nil
}
