package models

type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// Rank orders risk categories low < medium < high. Unknown categories rank -1.
func (r RiskCategory) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return -1
	}
}

func (r RiskCategory) IsValid() bool {
	return r.Rank() >= 0
}

type SizeClass string

const (
	SizeCompact  SizeClass = "compact"
	SizeUtility  SizeClass = "utility"
	SizeStandard SizeClass = "standard"
	SizeLarge    SizeClass = "large"

	// breed sizes for the pet catalog
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeGiant  SizeClass = "giant"
)

type PlanType string

const (
	PlanBasic         PlanType = "basic"
	PlanStandard      PlanType = "standard"
	PlanPremium       PlanType = "premium"
	PlanComprehensive PlanType = "comprehensive"
)

type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "active"
	PolicyExpired   PolicyStatus = "expired"
	PolicyCancelled PolicyStatus = "cancelled"
	PolicyPending   PolicyStatus = "pending"
)

type FactCategory string

const (
	FactTractorType FactCategory = "tractor_type"
	FactTractorName FactCategory = "tractor_name"
	FactTractorAge  FactCategory = "tractor_age"
	FactCondition   FactCategory = "condition"
	FactInsurance   FactCategory = "insurance"
	FactGeneric     FactCategory = "fact"
)
