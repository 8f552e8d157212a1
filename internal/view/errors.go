package view

import (
	"errors"

	"github.com/dmitrijs2005/rbacdash/internal/common"
)

var (
	ErrModalBusy   = errors.New("another dialog is already open")
	ErrModalClosed = errors.New("no dialog is open")
)

// User-facing validation messages.
const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgShortPassword  = "Password must be at least 6 characters long"
	MsgInvalidRole    = "Please select a valid role"
)

// ValidationError is a rejected form submission. Message is meant to be
// shown to the viewer as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
