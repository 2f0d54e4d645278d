package models

import (
	"fmt"
	"strings"
	"time"

	"quote-service/internal/utils"
)

// CreateQuoteRequest accepts the product type under its tractor or breed alias.
type CreateQuoteRequest struct {
	ProductTypeName          string   `json:"productTypeName" validate:"omitempty,max=100"`
	TractorType              string   `json:"tractorType" validate:"omitempty,max=100"`
	BreedName                string   `json:"breedName" validate:"omitempty,max=100"`
	AgeYears                 *float64 `json:"ageYears" validate:"required,gte=0"`
	PlanType                 PlanType `json:"planType" validate:"required,max=32"`
	HasModifications         *bool    `json:"hasModifications,omitempty"`
	HasPreexistingConditions *bool    `json:"hasPreexistingConditions,omitempty"`
	UserID                   *string  `json:"userId,omitempty" validate:"omitempty,max=128"`
	SessionID                *string  `json:"sessionId,omitempty" validate:"omitempty,max=128"`
}

func (r CreateQuoteRequest) ResolvedProductTypeName() string {
	for _, name := range []string{r.ProductTypeName, r.TractorType, r.BreedName} {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func (r CreateQuoteRequest) Modified() bool {
	if r.HasModifications != nil {
		return *r.HasModifications
	}
	return r.HasPreexistingConditions != nil && *r.HasPreexistingConditions
}

func (r CreateQuoteRequest) Validate() []utils.ValidationError {
	errs := utils.ValidateStruct(r)
	if r.ResolvedProductTypeName() == "" {
		errs = append(errs, utils.ValidationError{
			Field:   "productTypeName",
			Message: "productTypeName is required",
		})
	}
	return errs
}

type AddMachineRequest struct {
	Name                     string     `json:"name" validate:"required,min=1,max=100"`
	TypeID                   *int64     `json:"type_id,omitempty" validate:"omitempty,gte=1"`
	TypeName                 string     `json:"type_name" validate:"required,min=1,max=100"`
	ManufacturedOn           *time.Time `json:"manufactured_on,omitempty"`
	AgeYears                 float64    `json:"age_years" validate:"gte=0"`
	RegistrationNumber       *string    `json:"registration_number,omitempty" validate:"omitempty,max=32"`
	HasModifications         bool       `json:"has_modifications"`
	HasPreexistingConditions bool       `json:"has_preexisting_conditions"`
	PreexistingConditions    []string   `json:"preexisting_conditions,omitempty" validate:"omitempty,max=20,dive,max=200"`
	PhotoURL                 *string    `json:"photo_url,omitempty" validate:"omitempty,url"`
}

func (r AddMachineRequest) Validate() []utils.ValidationError {
	errs := utils.ValidateStruct(r)
	if r.ManufacturedOn != nil && r.ManufacturedOn.After(time.Now()) {
		errs = append(errs, utils.ValidationError{
			Field:   "manufactured_on",
			Message: fmt.Sprintf("manufactured_on cannot be in the future: %s", r.ManufacturedOn.Format(time.DateOnly)),
		})
	}
	return errs
}

type RememberRequest struct {
	UserID  string `json:"userId" validate:"required,max=128,externalid"`
	Message string `json:"message" validate:"required,max=4000"`
	Role    string `json:"role,omitempty" validate:"omitempty,oneof=user assistant"`
}

func (r RememberRequest) Validate() []utils.ValidationError {
	return utils.ValidateStruct(r)
}
