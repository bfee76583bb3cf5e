// Package validation holds the client-side rules applied to form input
// before anything is sent to the API.
package validation

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors for individual rules. Match them with errors.Is.
var (
	ErrNegativeBalanceNotAllowed = errors.New("negative balance not allowed for this account type")
	ErrPositiveCreditBalance     = errors.New("credit account balance must be zero or negative")
	ErrOverdraftLimitExceeded    = errors.New("overdraft limit exceeded")
	ErrBalanceTooLarge           = errors.New("balance exceeds maximum allowed value")
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrMaskedNumberInvalid       = errors.New("invalid masked account number")
	ErrUnknownPeriod             = errors.New("unknown period type")
	ErrBudgetOverlap             = errors.New("overlapping active budget")
	ErrDuplicateCategory         = errors.New("duplicate category")
)

// FieldError is a rule failure attached to one form field.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FieldErrors maps a form field name to the message shown next to it.
// An empty FieldErrors means the form is valid.
type FieldErrors map[string]string

// Add records msg for field, replacing any earlier message.
func (e FieldErrors) Add(field, msg string) {
	e[field] = msg
}

// Has reports whether field has a message.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Merge overwrites local messages with the ones in remote and returns e.
// Stale local messages for fields absent from remote are kept. A nil e
// yields a new FieldErrors.
func (e FieldErrors) Merge(remote map[string]string) FieldErrors {
	if e == nil {
		e = FieldErrors{}
	}
	for field, msg := range remote {
		e[field] = msg
	}
	return e
}

// Fields returns the field names with messages, sorted.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Err returns e as an error, or nil when there are no messages.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}
