package pricing

import (
	"errors"
	"fmt"
	"math"

	"quote-service/internal/models"
)

var ErrPlanNotFound = fmt.Errorf("plan tier %w", models.ErrNotFound)

// Result is a computed premium. Plan echoes the configured tier unchanged.
type Result struct {
	MonthlyPremium int64                `json:"monthlyPremium"`
	AnnualPremium  int64                `json:"annualPremium"`
	Plan           models.InsurancePlan `json:"plan"`
	Breakdown      Breakdown            `json:"breakdown"`
	PricingVersion string               `json:"pricingVersion"`
}

// Breakdown records each factor that produced the monthly premium.
type Breakdown struct {
	BasePremium            float64 `json:"basePremium"`
	AgeBracket             string  `json:"ageBracket"`
	AgeMultiplier          float64 `json:"ageMultiplier"`
	RiskMultiplier         float64 `json:"riskMultiplier"`
	ModificationMultiplier float64 `json:"modificationMultiplier"`
	AnnualDiscountFactor   float64 `json:"annualDiscountFactor"`
}

// Calculate prices a product type for the given age, plan tier and modification flag.
//
//	monthly = round(base * age * risk * modification)
//	annual  = round(monthly * 12 * annual discount factor)
func Calculate(cfg *Config, productType models.ProductType, ageYears float64, planType models.PlanType, hasModifications bool) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("pricing config is nil")
	}

	plan, ok := cfg.Plan(planType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlanNotFound, planType)
	}

	risk, ok := cfg.RiskMultipliers[productType.RiskCategory]
	if !ok {
		return nil, fmt.Errorf("%w: unknown risk category %q for product type %q",
			models.ErrValidation, productType.RiskCategory, productType.Name)
	}

	ageTable := cfg.AgeBrackets
	if len(productType.AgeMultipliers) > 0 {
		ageTable = productType.AgeMultipliers
	}
	bracket := selectBracket(ageTable, ageYears)

	mod := 1.0
	if hasModifications && cfg.surchargeApplies(planType) {
		mod = cfg.ModificationSurcharge
	}

	monthly := int64(math.Round(plan.BaseMonthlyPremium * bracket.Multiplier * risk * mod))
	annual := int64(math.Round(float64(monthly) * 12 * cfg.AnnualDiscountFactor))

	return &Result{
		MonthlyPremium: monthly,
		AnnualPremium:  annual,
		Plan:           plan,
		PricingVersion: cfg.Version,
		Breakdown: Breakdown{
			BasePremium:            plan.BaseMonthlyPremium,
			AgeBracket:             bracket.Label,
			AgeMultiplier:          bracket.Multiplier,
			RiskMultiplier:         risk,
			ModificationMultiplier: mod,
			AnnualDiscountFactor:   cfg.AnnualDiscountFactor,
		},
	}, nil
}

// selectBracket picks the last bracket whose MinAge <= age; younger ages use the first.
func selectBracket(table models.AgeTable, age float64) models.AgeBracket {
	if len(table) == 0 {
		return models.AgeBracket{Label: "default", Multiplier: 1}
	}
	selected := table[0]
	for _, b := range table {
		if age >= b.MinAge {
			selected = b
		}
	}
	return selected
}
