package payment

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrNotPayable       = errors.New("target is not in a payable state")
	ErrInvalidSignature = errors.New("invalid gateway signature")
	ErrNotRefundable    = errors.New("payment is not refundable")
	ErrRefundTooLarge   = errors.New("refund exceeds captured amount")
)
