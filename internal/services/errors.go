package services

import "errors"

// Billing service errors
var (
	// Ledger errors
	ErrNoLedger = errors.New("no ledger loaded")
	ErrNoData   = errors.New("no billing data found")

	// Request errors
	ErrInvalidInput = errors.New("invalid input")
)
