package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"quote-service/internal/models"
)

type UserService struct {
	repo         UserStore
	productTypes *ProductTypeService
}

func NewUserService(repo UserStore, productTypes *ProductTypeService) *UserService {
	return &UserService{repo: repo, productTypes: productTypes}
}

func (s *UserService) ListMachines(ctx context.Context, userID string) ([]models.UserMachine, error) {
	return s.repo.ListMachines(ctx, userID)
}

func (s *UserService) ListPolicies(ctx context.Context, userID string) ([]models.InsurancePolicy, error) {
	return s.repo.ListPolicies(ctx, userID)
}

// AddMachine stores a machine for userID. A given type id must exist in the catalog.
// Without one the type name is matched against the catalog; an unknown type name is
// kept as free text.
func (s *UserService) AddMachine(ctx context.Context, userID string, req models.AddMachineRequest) (*models.UserMachine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", models.ErrValidation)
	}

	machine := &models.UserMachine{
		UserID:                   userID,
		Name:                     strings.TrimSpace(req.Name),
		TypeID:                   req.TypeID,
		TypeName:                 strings.TrimSpace(req.TypeName),
		ManufacturedOn:           req.ManufacturedOn,
		AgeYears:                 req.AgeYears,
		RegistrationNumber:       req.RegistrationNumber,
		HasModifications:         req.HasModifications,
		HasPreexistingConditions: req.HasPreexistingConditions,
		PreexistingConditions:    req.PreexistingConditions,
		PhotoURL:                 req.PhotoURL,
	}
	if machine.PreexistingConditions == nil {
		machine.PreexistingConditions = []string{}
	}

	if machine.TypeID != nil && s.productTypes != nil {
		pt, err := s.productTypes.GetByID(ctx, *machine.TypeID)
		switch {
		case err == nil:
			machine.TypeName = pt.Name
		case errors.Is(err, models.ErrNotFound):
			return nil, fmt.Errorf("%w: type_id %d does not exist", models.ErrValidation, *machine.TypeID)
		default:
			return nil, err
		}
	}

	if machine.TypeID == nil && s.productTypes != nil {
		pt, err := s.productTypes.FindByName(ctx, machine.TypeName)
		switch {
		case err == nil:
			machine.TypeID = &pt.ID
			machine.TypeName = pt.Name
		case errors.Is(err, models.ErrNotFound):
			slog.Info("machine type not in catalog", "type_name", machine.TypeName)
		default:
			return nil, err
		}
	}

	if err := s.repo.AddMachine(ctx, machine); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return machine, nil
}
