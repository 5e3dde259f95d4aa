package services

import (
	"errors"
	"strings"
)

// Error kinds. Controllers map them to status codes with errors.Is; upstream
// Trello failures stay *trello.APIError and keep their own status.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

// Error is a classified service error whose message is safe to show to clients
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func invalidInput(messages ...string) error {
	return &Error{Kind: ErrInvalidInput, Message: strings.Join(messages, ", ")}
}

func unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}
