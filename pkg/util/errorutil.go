package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// DuplicateNameMessage is the fixed body returned for the users unique index violation.
	DuplicateNameMessage = "duplicate error, firstName and lastName already in use"

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewUnprocessable flags a request the server understood but cannot process:
// malformed identifiers, invalid field values, disallowed status transitions.
func NewUnprocessable(message string, details map[string]any) error {
	return NewDomainError("UNPROCESSABLE_ENTITY", message, http.StatusUnprocessableEntity, details)
}

// NewNotFound reports an absent entity by resource name and identifier.
func NewNotFound(resource, id string) error {
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("no %s found with ID %s", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, reclassifying store
// errors at the boundary: missing rows become 404, unique violations 409 and
// constraint violations 422. Anything unrecognized stays a 500.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{
			Code:       "NOT_FOUND",
			Message:    "resource not found",
			HTTPStatus: http.StatusNotFound,
			Err:        err,
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &DomainError{
				Code:       "CONFLICT",
				Message:    DuplicateNameMessage,
				HTTPStatus: http.StatusConflict,
				Err:        err,
			}
		case pgForeignKeyViolation, pgCheckViolation:
			return &DomainError{
				Code:       "UNPROCESSABLE_ENTITY",
				Message:    "validation failed: " + pgErr.Message,
				HTTPStatus: http.StatusUnprocessableEntity,
				Err:        err,
			}
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
