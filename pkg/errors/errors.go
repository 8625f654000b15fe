// Package errors provides custom error types for the fipsref system.
// These errors enable programmatic error checking across the build,
// validate and fix pipeline and map each failure class to a clear message.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the fipsref system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingColumns indicates a tabular input lacks required columns
	ErrMissingColumns = errors.New("missing required columns")

	// ErrIntegrity indicates a join produced more matches than allowed
	ErrIntegrity = errors.New("join integrity violated")

	// ErrSourceUnavailable indicates the reference source could not be retrieved
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrValidationFailed indicates dataset rows failed validation
	ErrValidationFailed = errors.New("validation failed")

	// ErrDrift indicates a published output changed during a guarded build
	ErrDrift = errors.New("output drift detected")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ConfigError represents a configuration error, such as an input file
// without the columns a stage requires.
type ConfigError struct {
	Component string
	Message   string
	Missing   []string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.Message
	if len(e.Missing) > 0 {
		msg = fmt.Sprintf("%s: [%s]", msg, strings.Join(e.Missing, ", "))
	}
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, msg)
	}
	return fmt.Sprintf("configuration error: %s", msg)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	if target == ErrMissingColumns {
		return len(e.Missing) > 0
	}
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// NewMissingColumnsError creates a ConfigError listing the absent columns.
func NewMissingColumnsError(component string, missing []string) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   "missing required columns",
		Missing:   missing,
	}
}

// IntegrityError represents a join whose right side was not unique on the key.
type IntegrityError struct {
	Key     string
	Value   string
	Matches int
}

// Error implements the error interface
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("join on %s=%q matched %d rows, expected at most 1", e.Key, e.Value, e.Matches)
}

// Is implements errors.Is support
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// NewIntegrityError creates a new IntegrityError
func NewIntegrityError(key, value string, matches int) *IntegrityError {
	return &IntegrityError{Key: key, Value: value, Matches: matches}
}

// APIError represents an error from a remote reference source
type APIError struct {
	Source     string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewAPIError creates a new APIError
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ValidationFailedError reports how many selected dataset rows were erroneous.
type ValidationFailedError struct {
	Problems int
	Total    int
}

// Error implements the error interface
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("found %d problematic rows out of %d", e.Problems, e.Total)
}

// Is implements errors.Is support
func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidationFailed
}

// DriftError reports that a guarded output file changed content.
// The new content has already been written when this is returned.
type DriftError struct {
	Path    string
	OldHash string
	NewHash string
}

// Error implements the error interface
func (e *DriftError) Error() string {
	return fmt.Sprintf("%s changed: sha256 %s -> %s", e.Path, e.OldHash, e.NewHash)
}

// Is implements errors.Is support
func (e *DriftError) Is(target error) bool {
	return target == ErrDrift
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "tsv", "csv", "json"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "fetch", "build", "publish", "load"
	Resource  string // "gazetteer", "lookup", "dataset", "database"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsMissingColumns checks if an error reports absent input columns
func IsMissingColumns(err error) bool {
	return errors.Is(err, ErrMissingColumns)
}

// IsIntegrity checks if an error is a join integrity failure
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// IsValidationFailed checks if an error carries a failed validation summary
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsDrift checks if an error is a commit guard drift signal
func IsDrift(err error) bool {
	return errors.Is(err, ErrDrift)
}

// IsSourceUnavailable checks if an error indicates a failed download
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsNotExist checks if an error, possibly wrapped, reports a missing file
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
