package models

import (
	"time"

	"github.com/lib/pq"
)

// UserMachine is a tractor registered on a user's dashboard.
type UserMachine struct {
	ID                       int64          `json:"id" db:"id"`
	UserID                   string         `json:"user_id" db:"user_id"`
	Name                     string         `json:"name" db:"name"`
	TypeID                   *int64         `json:"type_id,omitempty" db:"type_id"`
	TypeName                 string         `json:"type_name" db:"type_name"`
	ManufacturedOn           *time.Time     `json:"manufactured_on,omitempty" db:"manufactured_on"`
	AgeYears                 float64        `json:"age_years" db:"age_years"`
	RegistrationNumber       *string        `json:"registration_number,omitempty" db:"registration_number"`
	HasModifications         bool           `json:"has_modifications" db:"has_modifications"`
	HasPreexistingConditions bool           `json:"has_preexisting_conditions" db:"has_preexisting_conditions"`
	PreexistingConditions    pq.StringArray `json:"preexisting_conditions" db:"preexisting_conditions"`
	PhotoURL                 *string        `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt                time.Time      `json:"created_at" db:"created_at"`
}

type InsurancePolicy struct {
	ID                  int64           `json:"id" db:"id"`
	PolicyNumber        string          `json:"policy_number" db:"policy_number"`
	UserID              string          `json:"user_id" db:"user_id"`
	MachineID           int64           `json:"machine_id" db:"machine_id"`
	MachineName         *string         `json:"machine_name,omitempty" db:"machine_name"`
	TypeName            *string         `json:"type_name,omitempty" db:"type_name"`
	PlanType            PlanType        `json:"plan_type" db:"plan_type"`
	MonthlyPremium      int64           `json:"monthly_premium" db:"monthly_premium"`
	AnnualCoverageLimit int64           `json:"annual_coverage_limit" db:"annual_coverage_limit"`
	Deductible          int64           `json:"deductible" db:"deductible"`
	CoverageDetails     CoverageDetails `json:"coverage_details" db:"coverage_details"`
	StartDate           time.Time       `json:"start_date" db:"start_date"`
	EndDate             *time.Time      `json:"end_date,omitempty" db:"end_date"`
	Status              PolicyStatus    `json:"status" db:"status"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}
