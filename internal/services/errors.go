package services

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrMissingDestination = errors.New("withdrawal destination is required")
	ErrBelowMinimum       = errors.New("amount is below the minimum withdrawal")
)
