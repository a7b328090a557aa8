package eos

import (
	"context"
)

// EOSService defines business logic for end-of-service benefit calculation
type EOSService interface {
	// Calculate computes and persists the statutory end-of-service benefit
	Calculate(ctx context.Context, req CalculateRequest) (CalculationResponse, error)

	// GetCalculation retrieves a stored calculation by ID
	GetCalculation(ctx context.Context, id string) (CalculationResponse, error)

	// ListByEmployee lists stored calculations for an employee
	ListByEmployee(ctx context.Context, employeeID string) ([]CalculationResponse, error)
}
