package policy

import "errors"

var (
	ErrPolicyNotFound = errors.New("labor policy not found")
)
