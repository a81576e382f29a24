package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "fraudshield/internal/errors"
)

// Validator collects field errors
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message reported for a field
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks if a string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Positive checks a finite value greater than zero
func (v *Validator) Positive(field string, value float64) {
	v.Check(!math.IsNaN(value) && !math.IsInf(value, 0) && value > 0, field, "must be greater than zero")
}

// Range checks min <= value <= max
func (v *Validator) Range(field string, value, min, max float64) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %.2f and %.2f", min, max))
}

// OneOf checks value is one of the allowed choices
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, "must be one of "+strings.Join(allowed, ", "))
}

// Err returns nil when valid, otherwise a *Error listing every field.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make(map[string]string, len(v.Errors))
	for k, msg := range v.Errors {
		fields[k] = msg
	}
	return &Error{Fields: fields}
}

// Error reports invalid input fields.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return apperrors.ErrValidationFailed.Message + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return apperrors.ErrValidationFailed
}
