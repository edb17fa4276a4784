package domain

import "strings"

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// JoinFieldErrors renders field errors into a single human-readable message,
// e.g. "issue validation failed: userId: is required".
func JoinFieldErrors(subject string, errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return subject + " validation failed: " + strings.Join(parts, "; ")
}

// FieldErrorDetails converts field errors into a details map for error bodies.
func FieldErrorDetails(errs []FieldError) map[string]any {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]any, len(errs))
	for _, e := range errs {
		details[e.Field] = e.Message
	}
	return details
}
