package wps

import "github.com/sanadhr/payroll-backend-go/internal/pkg/validator"

type GenerateRequest struct {
	PayrollRunID string `json:"payroll_run_id"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayrollRunID) {
		errs = append(errs, validator.ValidationError{Field: "payroll_run_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateResponse struct {
	WPSSubmissionID string `json:"wps_submission_id"`
	FileName        string `json:"file_name"`
	RecordsCount    int    `json:"records_count"`
}
