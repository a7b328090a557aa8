package gosi

import "errors"

var (
	ErrRateScheduleNotFound = errors.New("gosi rate schedule not found")
	ErrSyncLogNotFound      = errors.New("gosi sync log not found")
	ErrInvalidSyncType      = errors.New("invalid gosi sync type")
)
