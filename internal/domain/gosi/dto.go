package gosi

import "github.com/sanadhr/payroll-backend-go/internal/pkg/validator"

type SyncRequest struct {
	CompanyID string `json:"company_id"`
	SyncType  string `json:"sync_type"`
}

var validSyncTypes = []string{"employee_data", "wage_data", "contribution_data"}

func (r *SyncRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.SyncType, validSyncTypes) {
		errs = append(errs, validator.ValidationError{Field: "sync_type", Message: "must be one of employee_data, wage_data, contribution_data"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SyncResponse struct {
	SyncLogID        string `json:"sync_log_id"`
	RecordsProcessed int    `json:"records_processed"`
	RecordsSuccess   int    `json:"records_success"`
}
