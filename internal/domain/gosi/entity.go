package gosi

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSchedule - GOSI contribution rates by hire-date cohort. Rates are
// progressive per the Royal Decree rate-progression table: the applicable
// row is selected by the employee's hire date and the as-of date.
type RateSchedule struct {
	ID            string
	HireDateFrom  time.Time
	HireDateTo    *time.Time
	SaudiOnly     bool
	EmployeeRate  decimal.Decimal
	EmployerRate  decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// Calculation - Result of a GOSI contribution computation.
type Calculation struct {
	EmployeeRate         decimal.Decimal `json:"employee_rate"`
	EmployerRate         decimal.Decimal `json:"employer_rate"`
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	CalculationBase      decimal.Decimal `json:"calculation_base"`

	// RateSource records where the rates came from: "schedule" or
	// "default". Defaults are a degraded mode and are logged when used.
	RateSource string `json:"rate_source"`
}

type SyncStatus string

const (
	SyncStatusInProgress SyncStatus = "in_progress"
	SyncStatusCompleted  SyncStatus = "completed"
	SyncStatusFailed     SyncStatus = "failed"
)

// SyncLog - One row per synchronization attempt against the GOSI system.
type SyncLog struct {
	ID               string
	CompanyID        string
	SyncType         string
	Status           SyncStatus
	RecordsProcessed int
	RecordsSuccess   int
	RecordsFailed    int
	ErrorDetail      *string
	StartedAt        time.Time
	CompletedAt      *time.Time
}
