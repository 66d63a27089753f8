package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrReentrantMutation is raised (as panic value) when subscriber mutates store during notification delivery
var ErrReentrantMutation = errors.New("store mutation attempted during notification delivery")

// ErrUnknownDataKey is raised (as panic value) when subscribing to unsupported data key
var ErrUnknownDataKey = errors.New("unknown data key")

// Violation is single field-level validation failure
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErr is returned when mutation input is malformed
type ValidationErr struct {
	violations []Violation
}

// NewValidationErr builds ValidationErr with single violation
func NewValidationErr(field string, msg string) *ValidationErr {
	return &ValidationErr{violations: []Violation{{Field: field, Message: msg}}}
}

func (e *ValidationErr) Error() string {
	msgs := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "\n")
}

// Violation appends violation
func (e *ValidationErr) Violation(v Violation) {
	e.violations = append(e.violations, v)
}

// Violations returns copy of collected violations
func (e *ValidationErr) Violations() []Violation {
	return append([]Violation(nil), e.violations...)
}

// HasViolations reports whether at least one violation was collected
func (e *ValidationErr) HasViolations() bool {
	return len(e.violations) > 0
}

// Field returns message of first violation for field and whether it was found
func (e *ValidationErr) Field(field string) (string, bool) {
	for _, v := range e.violations {
		if v.Field == field {
			return v.Message, true
		}
	}
	return "", false
}

func (e *ValidationErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []Violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EntryNotFoundErr is returned when mutation or lookup targets non-existent record
type EntryNotFoundErr struct {
	entity string
	id     string
}

func (e *EntryNotFoundErr) Error() string {
	return fmt.Sprintf("%s with id %s doesn't exist", e.entity, e.id)
}

// Entity returns name of the entity which wasn't found
func (e *EntryNotFoundErr) Entity() string {
	return e.entity
}

// ID returns requested identifier
func (e *EntryNotFoundErr) ID() string {
	return e.id
}

func (e *EntryNotFoundErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Entity  string `json:"entity"`
		ID      string `json:"id"`
		Message string `json:"message"`
	}{Entity: e.entity, ID: e.id, Message: e.Error()})
}

// NewEntryNotFoundErr builds EntryNotFoundErr
func NewEntryNotFoundErr(entity string, id string) *EntryNotFoundErr {
	return &EntryNotFoundErr{entity: entity, id: id}
}

// IsValidation reports whether err is or wraps ValidationErr
func IsValidation(err error) bool {
	var ve *ValidationErr
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is or wraps EntryNotFoundErr
func IsNotFound(err error) bool {
	var nf *EntryNotFoundErr
	return errors.As(err, &nf)
}
