// Package errors provides structured error types and exit codes for mimic.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the mimic CLI and by Conclusion.Exit.
const (
	ExitSuccess          = 0   // All tests passed
	ExitRuntimeError     = 1   // Unexpected runtime error
	ExitConfigError      = 2   // Invalid arguments, unsupported options or suite errors
	ExitEnvironmentError = 3   // Environment error (suite directory cannot be resolved, etc.)
	ExitTestsFailed      = 101 // At least one test failed, same code libtest uses
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindUnsupported
	KindNotFound
	KindValidation
	KindEnvironment
)

// MimicError is the base error type for mimic.
type MimicError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Underlying error
}

func (e *MimicError) Error() string {
	return e.Message
}

func (e *MimicError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *MimicError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindUnsupported, KindValidation, KindNotFound:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// Config creates a new configuration error.
func Config(message string) *MimicError {
	return &MimicError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *MimicError {
	return Config(fmt.Sprintf(format, args...))
}

// Unsupported creates an error for an option this harness recognizes but
// does not implement, such as a non-pretty output format.
func Unsupported(option, value string) *MimicError {
	return &MimicError{
		Kind:    KindUnsupported,
		Message: fmt.Sprintf("%s %q is not supported", option, value),
	}
}

// Environment creates a new environment error.
func Environment(message string) *MimicError {
	return &MimicError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *MimicError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *MimicError {
	return &MimicError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// Validation creates an error for a semantically invalid document.
// The message is prefixed with source, e.g. the manifest path.
func Validation(source string, err error) *MimicError {
	return &MimicError{
		Kind:    KindValidation,
		Message: fmt.Sprintf("%s: %v", source, err),
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *MimicError {
	return &MimicError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// IsKind reports whether err, or any error it wraps, is a MimicError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var me *MimicError
	if errors.As(err, &me) {
		return me.Kind == kind
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var me *MimicError
	if errors.As(err, &me) {
		return me.ExitCode()
	}
	return ExitRuntimeError
}
