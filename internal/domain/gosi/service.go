package gosi

import (
	"context"
)

// GOSIService defines business logic for GOSI integration
type GOSIService interface {
	// Sync simulates a synchronization cycle with the GOSI portal and
	// records it in the sync log
	Sync(ctx context.Context, req SyncRequest) (SyncResponse, error)
}
