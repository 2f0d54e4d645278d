package pricing

import (
	"errors"
	"fmt"
	"slices"

	"quote-service/internal/models"
)

// Config holds every business rule the quote engine applies. It is versioned so a
// persisted quote can name the rules that priced it.
type Config struct {
	Version               string                          `yaml:"version"`
	Currency              string                          `yaml:"currency"`
	Plans                 []models.InsurancePlan          `yaml:"plans"`
	AgeBrackets           models.AgeTable                 `yaml:"age_brackets"`
	RiskMultipliers       map[models.RiskCategory]float64 `yaml:"risk_multipliers"`
	ModificationSurcharge float64                         `yaml:"modification_surcharge"`
	// SurchargePlans limits the modification surcharge to these tiers. Empty applies it to all.
	SurchargePlans       []models.PlanType `yaml:"surcharge_plans"`
	AnnualDiscountFactor float64           `yaml:"annual_discount_factor"`
	QuoteValidityDays    int               `yaml:"quote_validity_days"`
}

func DefaultConfig() *Config {
	return &Config{
		Version:  "tractor-2025.1",
		Currency: "GBP",
		Plans:    defaultTractorPlans(),
		AgeBrackets: models.AgeTable{
			{Label: "new", MinAge: 0, Multiplier: 1.15},
			{Label: "mature", MinAge: 2, Multiplier: 1.0},
			{Label: "senior", MinAge: 10, Multiplier: 1.25},
			{Label: "vintage", MinAge: 15, Multiplier: 1.4},
		},
		RiskMultipliers: map[models.RiskCategory]float64{
			models.RiskLow:    1.0,
			models.RiskMedium: 1.2,
			models.RiskHigh:   1.5,
		},
		ModificationSurcharge: 1.2,
		AnnualDiscountFactor:  1.0,
		QuoteValidityDays:     30,
	}
}

func (c *Config) Plan(planType models.PlanType) (models.InsurancePlan, bool) {
	for _, p := range c.Plans {
		if p.Type == planType {
			return p, true
		}
	}
	return models.InsurancePlan{}, false
}

func (c *Config) surchargeApplies(planType models.PlanType) bool {
	return len(c.SurchargePlans) == 0 || slices.Contains(c.SurchargePlans, planType)
}

func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("version is required")
	}
	if len(c.Plans) == 0 {
		return errors.New("at least one plan is required")
	}

	seen := make(map[models.PlanType]bool, len(c.Plans))
	for i, p := range c.Plans {
		if p.Type == "" {
			return fmt.Errorf("plan %d: type is required", i)
		}
		if seen[p.Type] {
			return fmt.Errorf("plan %d: duplicate plan type %q", i, p.Type)
		}
		seen[p.Type] = true
		if p.BaseMonthlyPremium < 0 {
			return fmt.Errorf("plan %q: base monthly premium cannot be negative", p.Type)
		}
		if p.AnnualCoverageLimit < 0 || p.Deductible < 0 {
			return fmt.Errorf("plan %q: coverage limit and deductible cannot be negative", p.Type)
		}
	}

	if len(c.AgeBrackets) == 0 {
		return errors.New("at least one age bracket is required")
	}
	if err := c.AgeBrackets.Validate(); err != nil {
		return err
	}

	prev := 0.0
	for _, rc := range []models.RiskCategory{models.RiskLow, models.RiskMedium, models.RiskHigh} {
		m, ok := c.RiskMultipliers[rc]
		if !ok {
			return fmt.Errorf("risk multiplier for %q is required", rc)
		}
		if m <= 0 {
			return fmt.Errorf("risk multiplier for %q must be positive", rc)
		}
		if m < prev {
			return fmt.Errorf("risk multiplier for %q must not be lower than the previous category", rc)
		}
		prev = m
	}

	if c.ModificationSurcharge < 1 {
		return errors.New("modification surcharge must be at least 1")
	}
	for _, pt := range c.SurchargePlans {
		if !seen[pt] {
			return fmt.Errorf("surcharge plan %q is not a configured plan", pt)
		}
	}
	if c.AnnualDiscountFactor <= 0 || c.AnnualDiscountFactor > 1 {
		return errors.New("annual discount factor must be in (0, 1]")
	}
	if c.QuoteValidityDays <= 0 {
		return errors.New("quote validity days must be positive")
	}
	return nil
}

func defaultTractorPlans() []models.InsurancePlan {
	return []models.InsurancePlan{
		{
			Type:                models.PlanBasic,
			Name:                "Tractor Basic",
			BaseMonthlyPremium:  25,
			AnnualCoverageLimit: 25000,
			Deductible:          500,
			Coverage: models.CoverageDetails{
				AccidentCoverage: true,
				EmergencyCare:    true,
			},
			Features: []string{
				"Third-party liability cover",
				"Fire damage protection",
				"24/7 emergency helpline",
			},
		},
		{
			Type:                models.PlanStandard,
			Name:                "Tractor Standard",
			BaseMonthlyPremium:  75,
			AnnualCoverageLimit: 75000,
			Deductible:          350,
			Coverage: models.CoverageDetails{
				AccidentCoverage: true,
				IllnessCoverage:  true,
				PrescriptionMeds: true,
				EmergencyCare:    true,
				SpecialistVisits: true,
			},
			Features: []string{
				"Theft & accidental damage cover up to £75,000/year",
				"Road use cover included",
				"Breakdown assistance",
				"24/7 emergency helpline",
				"Windscreen & glass cover",
			},
		},
		{
			Type:                models.PlanPremium,
			Name:                "Tractor Premium",
			BaseMonthlyPremium:  150,
			AnnualCoverageLimit: 150000,
			Deductible:          200,
			Coverage: models.CoverageDetails{
				AccidentCoverage:     true,
				IllnessCoverage:      true,
				RoutineCare:          true,
				DentalCoverage:       true,
				HereditaryConditions: true,
				PrescriptionMeds:     true,
				EmergencyCare:        true,
				SpecialistVisits:     true,
			},
			Features: []string{
				"Full comprehensive cover up to £150,000/year",
				"Hire replacement tractor during repairs",
				"Attached implements covered",
				"Road use & field use",
				"Breakdown & recovery assistance",
				"Legal expenses cover",
				"Low £200 excess",
				"24/7 emergency helpline",
			},
		},
		{
			Type:                models.PlanComprehensive,
			Name:                "Tractor Comprehensive",
			BaseMonthlyPremium:  250,
			AnnualCoverageLimit: 500000,
			Deductible:          0,
			Coverage: models.CoverageDetails{
				AccidentCoverage:     true,
				IllnessCoverage:      true,
				RoutineCare:          true,
				DentalCoverage:       true,
				HereditaryConditions: true,
				PrescriptionMeds:     true,
				EmergencyCare:        true,
				SpecialistVisits:     true,
				AlternativeTherapies: true,
			},
			Features: []string{
				"Full comprehensive cover up to £500,000/year",
				"ZERO excess option",
				"All implements & attachments covered",
				"Hire replacement machinery",
				"Business interruption cover",
				"Multi-vehicle fleet discount",
				"Agreed value guarantee",
				"Worldwide cover for shows & events",
				"GPS tracker contribution",
				"Priority claims processing",
			},
		},
	}
}
