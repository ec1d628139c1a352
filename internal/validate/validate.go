package validate

import (
	"fmt"
	"regexp"
)

var (
	emailRe      = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	nationalIDRe = regexp.MustCompile(`^[0-9]{13}$`)
)

// FieldError names the first field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Form runs checks in order and stops at the first failure.
type Form struct {
	err *FieldError
}

func (f *Form) fail(field, message string) {
	if f.err == nil {
		f.err = &FieldError{Field: field, Message: message}
	}
}

// Err returns the first failure, or nil when everything passed.
func (f *Form) Err() error {
	if f.err == nil {
		return nil
	}
	return f.err
}

func (f *Form) Required(field, value string) *Form {
	if f.err == nil && value == "" {
		f.fail(field, "is required")
	}
	return f
}

// Email accepts an empty value; the field is optional everywhere it appears.
func (f *Form) Email(field, value string) *Form {
	if f.err == nil && value != "" && !emailRe.MatchString(value) {
		f.fail(field, "invalid email format")
	}
	return f
}

// NationalID accepts empty; when present it must be exactly 13 digits.
func (f *Form) NationalID(field, value string) *Form {
	if f.err == nil && value != "" && !nationalIDRe.MatchString(value) {
		f.fail(field, "must be exactly 13 digits")
	}
	return f
}

func (f *Form) Positive(field string, value float64) *Form {
	if f.err == nil && value <= 0 {
		f.fail(field, "must be greater than zero")
	}
	return f
}

func (f *Form) NonNegative(field string, value int) *Form {
	if f.err == nil && value < 0 {
		f.fail(field, "must not be negative")
	}
	return f
}

func (f *Form) IntRange(field string, value, min, max int) *Form {
	if f.err == nil && (value < min || value > max) {
		f.fail(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return f
}

// Fraction checks a rate in (0, 1], e.g. a discount percentage.
func (f *Form) Fraction(field string, value float64) *Form {
	if f.err == nil && (value <= 0 || value > 1) {
		f.fail(field, "must be a fraction between 0 and 1")
	}
	return f
}
