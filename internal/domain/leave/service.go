package leave

import (
	"context"
)

// LeaveService defines business logic for statutory leave entitlements
type LeaveService interface {
	// Entitlement computes the annual leave entitlement and remaining
	// balance for an employee
	Entitlement(ctx context.Context, req EntitlementRequest) (EntitlementResponse, error)
}
