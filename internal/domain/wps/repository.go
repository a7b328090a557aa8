package wps

import "context"

type WPSRepository interface {
	CreateSubmission(ctx context.Context, submission Submission) (Submission, error)
	GetSubmissionByID(ctx context.Context, id string, companyID string) (Submission, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Submission, error)
}
