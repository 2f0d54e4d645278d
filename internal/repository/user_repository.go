package repository

import (
	"context"
	"fmt"
	"log/slog"

	"quote-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListMachines(ctx context.Context, userID string) ([]models.UserMachine, error) {
	machines := []models.UserMachine{}
	query := `
		SELECT id, user_id, name, type_id, type_name, manufactured_on, age_years,
			registration_number, has_modifications, has_preexisting_conditions,
			preexisting_conditions, photo_url, created_at
		FROM user_machines
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	if err := r.db.SelectContext(ctx, &machines, query, userID); err != nil {
		slog.Error("Failed to list user machines", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list user machines: %w", err)
	}
	return machines, nil
}

// AddMachine inserts the machine and fills in its generated id and created_at.
func (r *UserRepository) AddMachine(ctx context.Context, machine *models.UserMachine) error {
	query := `
		INSERT INTO user_machines (
			user_id, name, type_id, type_name, manufactured_on, age_years,
			registration_number, has_modifications, has_preexisting_conditions,
			preexisting_conditions, photo_url
		) VALUES (
			:user_id, :name, :type_id, :type_name, :manufactured_on, :age_years,
			:registration_number, :has_modifications, :has_preexisting_conditions,
			:preexisting_conditions, :photo_url
		)
		RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, machine)
	if err != nil {
		slog.Error("Failed to add user machine", "user_id", machine.UserID, "error", err)
		return fmt.Errorf("failed to add user machine: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&machine.ID, &machine.CreatedAt); err != nil {
			return fmt.Errorf("failed to read user machine id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to add user machine: %w", err)
	}

	slog.Info("Added user machine", "user_id", machine.UserID, "machine_id", machine.ID)
	return nil
}

func (r *UserRepository) ListPolicies(ctx context.Context, userID string) ([]models.InsurancePolicy, error) {
	policies := []models.InsurancePolicy{}
	query := `
		SELECT p.id, p.policy_number, p.user_id, p.machine_id, p.plan_type, p.monthly_premium,
			p.annual_coverage_limit, p.deductible, p.coverage_details, p.start_date, p.end_date,
			p.status, p.created_at, m.name AS machine_name, m.type_name AS type_name
		FROM insurance_policies p
		LEFT JOIN user_machines m ON p.machine_id = m.id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC`

	if err := r.db.SelectContext(ctx, &policies, query, userID); err != nil {
		slog.Error("Failed to list user policies", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list user policies: %w", err)
	}
	return policies, nil
}
