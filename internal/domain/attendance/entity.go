package attendance

import "time"

// Record - One timesheet row per employee per day.
type Record struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	ActualHours  float64
	PlannedHours float64
}
