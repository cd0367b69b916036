package services

import "errors"

var (
	// ErrResultNotFound is returned when a result id or draw number is unknown.
	ErrResultNotFound = errors.New("result not found")
	// ErrInvalidID is returned for a malformed result id.
	ErrInvalidID = errors.New("invalid result id")
	// ErrInvalidResult is returned when a result has neither a draw number
	// nor a lottery name.
	ErrInvalidResult = errors.New("result needs a draw number or lottery name")
	// ErrInvalidTicket is returned when a ticket fails format validation.
	ErrInvalidTicket = errors.New("invalid ticket number")
	// ErrEmptyText is returned when there is no bulletin text to parse.
	ErrEmptyText = errors.New("no text to parse")
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
