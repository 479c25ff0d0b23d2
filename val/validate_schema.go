package val

import (
	"errors"
	"fmt"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

// CodeValidationFailed is the errx code of schema validation failures.
const CodeValidationFailed = "VALIDATION_FAILED"

// FieldError is a single failed rule of a struct field.
type FieldError struct {
	Field   string // namespaced field name without the root struct, e.g. "address.city"
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Check validates schema and returns the failed rules in field order.
// The error is non-nil only when schema cannot be validated at all, e.g. a nil pointer.
func Check(schema any) ([]FieldError, error) {
	err := getValidator().Struct(schema)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, errx.New(
			fmt.Sprintf("[val]: cannot validate %T: %s", schema, err.Error()),
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Internal),
		)
	}

	fieldErrs := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrs = append(fieldErrs, FieldError{Field: fieldPath(fe), Message: describe(fe)})
	}
	return fieldErrs, nil
}

// ValidateSchema validates schema and reports failures as a single errx validation error
// whose fields map each field name to its message.
func ValidateSchema(schema any) error {
	fieldErrs, err := Check(schema)
	if err != nil {
		return err
	}
	if len(fieldErrs) == 0 {
		return nil
	}

	fields := make(errx.M, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field]; !seen {
			fields[fe.Field] = fe.Message
		}
	}

	return errx.New(
		"Validation failed. See fields for details.",
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
		errx.WithFields(fields),
	)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	for i := range len(ns) {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return fe.Field()
}
