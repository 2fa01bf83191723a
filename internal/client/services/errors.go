package services

import "errors"

var (
	// ErrBusy: another session-mutating operation held the slot until the
	// caller's context ended.
	ErrBusy = errors.New("another auth operation is in progress")
	// ErrValidation: the input was rejected before any request was sent.
	ErrValidation = errors.New("invalid input")
	// ErrFlowStep: a password-reset step was called out of order.
	ErrFlowStep = errors.New("password reset step out of order")
	// ErrUnknownCategory: no such video category.
	ErrUnknownCategory = errors.New("unknown video category")
)
