package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures by the layer that produced them.
type ErrorType string

const (
	ErrorTypeFilesystem    ErrorType = "FILESYSTEM_ERROR"
	ErrorTypeParse         ErrorType = "PARSE_ERROR"
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeDatabase      ErrorType = "DATABASE_ERROR"
	ErrorTypeConfiguration ErrorType = "CONFIGURATION_ERROR"
)

// Common seeder errors
var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrFixtureNotArray   = errors.New("fixture content is not a JSON array")
	ErrFixtureNotFound   = errors.New("fixture file not found")
	ErrNotConnected      = errors.New("database not connected")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType
	Message   string
	Details   map[string]interface{}
	Cause     error
	Component string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func NewFilesystemError(message string) *AppError {
	return NewAppError(ErrorTypeFilesystem, message)
}

func NewParseError(message string) *AppError {
	return NewAppError(ErrorTypeParse, message)
}

func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message)
}

func NewDatabaseError(message string) *AppError {
	return NewAppError(ErrorTypeDatabase, message)
}

func NewConfigurationError(message string) *AppError {
	return NewAppError(ErrorTypeConfiguration, message)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "" if none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

func IsFilesystem(err error) bool {
	return TypeOf(err) == ErrorTypeFilesystem || errors.Is(err, ErrFixtureNotFound)
}

func IsParse(err error) bool {
	return TypeOf(err) == ErrorTypeParse || errors.Is(err, ErrFixtureNotArray)
}

func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation || errors.Is(err, ErrUnknownCollection)
}

func IsDatabase(err error) bool {
	return TypeOf(err) == ErrorTypeDatabase || errors.Is(err, ErrNotConnected)
}

func IsConfiguration(err error) bool {
	return TypeOf(err) == ErrorTypeConfiguration
}
