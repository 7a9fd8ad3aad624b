/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when no item exists for a key
	ErrNotFound = errors.New("entity not found")

	// ErrStoreAccess is returned when a call to the store fails
	ErrStoreAccess = errors.New("store access failed")

	// ErrMapping is returned when raw attributes cannot be coerced into an entity
	ErrMapping = errors.New("entity mapping failed")

	// ErrParse is returned when a count result is not an integer
	ErrParse = errors.New("query result parse failed")

	// ErrStaleCursor is returned when the store keeps handing out a token without items
	ErrStaleCursor = errors.New("stale continuation token")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StoreAccessError wraps a transport, auth or server-side failure of the store.
// Transient marks throttling and server-side failures worth retrying.
type StoreAccessError struct {
	Op        string
	Domain    string
	Err       error
	Transient bool
}

func (e *StoreAccessError) Error() string {
	if e.Domain != "" {
		return fmt.Sprintf("%s on domain %q failed: %v", e.Op, e.Domain, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StoreAccessError) Is(target error) bool {
	return target == ErrStoreAccess
}

func (e *StoreAccessError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the call may succeed.
func (e *StoreAccessError) Retryable() bool {
	return e.Transient
}

// MappingError represents a failure to build an entity from raw attributes
type MappingError struct {
	Type string
	Key  string
	Err  error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("failed to map item %q to %s: %v", e.Key, e.Type, e.Err)
}

func (e *MappingError) Is(target error) bool {
	return target == ErrMapping
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// ParseError represents a count result that is not a base-10 integer
type ParseError struct {
	Query string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q returned by %q as integer: %v", e.Value, e.Query, e.Err)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StaleCursorError is returned when a page comes back empty while still
// carrying a continuation token, or when the store returns the token it was given.
type StaleCursorError struct {
	Domain string
	Token  string
}

func (e *StaleCursorError) Error() string {
	return fmt.Sprintf("domain %q returned an empty page with continuation token %q", e.Domain, e.Token)
}

func (e *StaleCursorError) Is(target error) bool {
	return target == ErrStaleCursor
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewStoreAccessError creates a new StoreAccessError
func NewStoreAccessError(op, domain string, err error) error {
	return &StoreAccessError{Op: op, Domain: domain, Err: err}
}

// NewTransientStoreError creates a StoreAccessError that may succeed on retry
func NewTransientStoreError(op, domain string, err error) error {
	return &StoreAccessError{Op: op, Domain: domain, Err: err, Transient: true}
}

// NewMappingError creates a new MappingError
func NewMappingError(entityType, key string, err error) error {
	return &MappingError{Type: entityType, Key: key, Err: err}
}

// NewParseError creates a new ParseError
func NewParseError(query, value string, err error) error {
	return &ParseError{Query: query, Value: value, Err: err}
}

// NewStaleCursorError creates a new StaleCursorError
func NewStaleCursorError(domain, token string) error {
	return &StaleCursorError{Domain: domain, Token: token}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStoreAccess checks if an error is a store access error
func IsStoreAccess(err error) bool {
	return errors.Is(err, ErrStoreAccess)
}

// IsRetryable checks if an error reports itself as retryable
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}

// IsMapping checks if an error is a mapping error
func IsMapping(err error) bool {
	return errors.Is(err, ErrMapping)
}

// IsParse checks if an error is a count parse error
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsStaleCursor checks if an error is a stale cursor error
func IsStaleCursor(err error) bool {
	return errors.Is(err, ErrStaleCursor)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
