package service

import "errors"

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409

	// ErrInvalidAmount covers malformed prices handed to intent creation.
	ErrInvalidAmount = errors.New("invalid amount") // 400

	// ErrPersistence marks a failed payment-record insert after an external
	// charge; operators reconcile these from the payment_insert_failed log line.
	ErrPersistence = errors.New("persistence") // 500

	// ErrDuplicateTxn is a confirmation re-submitted with an already
	// recorded transaction id.
	ErrDuplicateTxn = errors.New("duplicate transaction") // 409
)
