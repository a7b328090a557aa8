package policy

import (
	"context"
	"time"
)

// PolicyRepository resolves the labor policy effective for a company at a
// point in time. Implementations fall back to SaudiDefaults when the company
// has no configured policy.
type PolicyRepository interface {
	GetEffective(ctx context.Context, companyID string, asOf time.Time) (LaborPolicy, error)
}
