package employee

import "context"

// EmployeeRepository defines data access for employees.
// All methods take companyID to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetActiveByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error)
}
