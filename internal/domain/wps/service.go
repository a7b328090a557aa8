package wps

import (
	"context"
)

// WPSService defines business logic for Wage Protection System submissions
type WPSService interface {
	// Generate builds the WPS salary file for a calculated payroll run and
	// persists the submission record
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// GetSubmission retrieves a submission by ID
	GetSubmission(ctx context.Context, id string) (Submission, error)
}
