package models

type CoverageDetails struct {
	AccidentCoverage     bool `json:"accident_coverage" yaml:"accident_coverage"`
	IllnessCoverage      bool `json:"illness_coverage" yaml:"illness_coverage"`
	RoutineCare          bool `json:"routine_care" yaml:"routine_care"`
	DentalCoverage       bool `json:"dental_coverage" yaml:"dental_coverage"`
	HereditaryConditions bool `json:"hereditary_conditions" yaml:"hereditary_conditions"`
	PrescriptionMeds     bool `json:"prescription_meds" yaml:"prescription_meds"`
	EmergencyCare        bool `json:"emergency_care" yaml:"emergency_care"`
	SpecialistVisits     bool `json:"specialist_visits" yaml:"specialist_visits"`
	AlternativeTherapies bool `json:"alternative_therapies" yaml:"alternative_therapies"`
}

type InsurancePlan struct {
	Type                PlanType        `json:"type" yaml:"type"`
	Name                string          `json:"name" yaml:"name"`
	BaseMonthlyPremium  float64         `json:"base_monthly_premium" yaml:"base_monthly_premium"`
	AnnualCoverageLimit int64           `json:"annual_coverage_limit" yaml:"annual_coverage_limit"`
	Deductible          int64           `json:"deductible" yaml:"deductible"`
	Coverage            CoverageDetails `json:"coverage" yaml:"coverage"`
	Features            []string        `json:"features" yaml:"features"`
}

// PlanSummary is the plan as echoed inside a quote.
type PlanSummary struct {
	Type                PlanType `json:"type"`
	Name                string   `json:"name"`
	AnnualCoverageLimit int64    `json:"annualCoverageLimit"`
	Deductible          int64    `json:"deductible"`
	Features            []string `json:"features"`
}

// PlanListing is a plan in the GET /api/quote catalog. The base premium is always
// present, including for a zero-priced tier.
type PlanListing struct {
	Type                PlanType `json:"type"`
	Name                string   `json:"name"`
	BaseMonthlyPremium  float64  `json:"baseMonthlyPremium"`
	AnnualCoverageLimit int64    `json:"annualCoverageLimit"`
	Deductible          int64    `json:"deductible"`
	Features            []string `json:"features"`
}

func (p InsurancePlan) features() []string {
	if p.Features == nil {
		return []string{}
	}
	return p.Features
}

func (p InsurancePlan) Summary() PlanSummary {
	return PlanSummary{
		Type:                p.Type,
		Name:                p.Name,
		AnnualCoverageLimit: p.AnnualCoverageLimit,
		Deductible:          p.Deductible,
		Features:            p.features(),
	}
}

func (p InsurancePlan) Listing() PlanListing {
	return PlanListing{
		Type:                p.Type,
		Name:                p.Name,
		BaseMonthlyPremium:  p.BaseMonthlyPremium,
		AnnualCoverageLimit: p.AnnualCoverageLimit,
		Deductible:          p.Deductible,
		Features:            p.features(),
	}
}
