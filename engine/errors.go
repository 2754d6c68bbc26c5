package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is
	ErrConfiguration = errors.New("invalid configuration")
	// ErrInvalidTransition is returned when a lifecycle call does not apply to the current state
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrSessionActive rejects changes that are only allowed between sessions
	ErrSessionActive = errors.New("session is active")
)

// ConfigurationError reports a session setting that cannot be played with
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func transitionErr(op string, from SessionState) error {
	return fmt.Errorf("%s from %s: %w", op, from, ErrInvalidTransition)
}
