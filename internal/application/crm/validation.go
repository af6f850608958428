package crm

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/erp/crm/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

// FieldViolation describes one column that failed validation
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Message renders the violation for API responses
func (v FieldViolation) Message() string {
	switch v.Rule {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "url":
		return "Invalid URL format"
	case "len":
		return "Must be exactly " + v.Param + " characters"
	case "max":
		return "Must be at most " + v.Param
	case "min":
		return "Must be at least " + v.Param
	case "oneof":
		return "Must be one of: " + v.Param
	default:
		return "Failed on the '" + v.Rule + "' rule"
	}
}

// ValidationError lists every field that failed validation. It matches
// shared.ErrInvalidInput under errors.Is.
type ValidationError struct {
	Entity     string
	Violations []FieldViolation
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fmt.Sprintf("Invalid %s: %s", e.Entity, strings.Join(fields, ", "))
}

// Unwrap exposes the INVALID_INPUT domain error
func (e *ValidationError) Unwrap() error {
	return shared.NewDomainError(shared.ErrInvalidInput.Code, e.Error())
}

// Fields returns the names of the failing columns
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fields
}

// newValidator builds a validator reporting fields by their JSON names,
// which equal the column names of catalog entities.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateRecord(ctx context.Context, v *validator.Validate, entity string, rec any) error {
	err := v.StructCtx(ctx, rec)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", entity, err)
	}
	out := &ValidationError{Entity: entity, Violations: make([]FieldViolation, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Violations[i] = FieldViolation{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}
	}
	return out
}
