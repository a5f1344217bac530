package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeAlreadyWaiting = "already_waiting"
	ErrCodeAlreadyPaired  = "already_paired"
	ErrCodeBadRequest     = "bad_request"
)

var (
	ErrAlreadyWaiting    = errors.New("already waiting for a partner")
	ErrAlreadyPaired     = errors.New("already paired")
	ErrAlreadyRegistered = errors.New("client already registered")
	ErrUnknownClient     = errors.New("unknown client")
	ErrHubStopped        = errors.New("hub stopped")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
