package eos

import "errors"

var (
	ErrCalculationNotFound = errors.New("end-of-service calculation not found")
	ErrInvalidReason       = errors.New("invalid end-of-service reason")
)
