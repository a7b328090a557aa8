package eos

import "context"

type EOSRepository interface {
	CreateCalculation(ctx context.Context, calc Calculation) (Calculation, error)
	GetCalculationByID(ctx context.Context, id string) (Calculation, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]Calculation, error)
}
