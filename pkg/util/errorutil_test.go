package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	err := NewUnprocessable("cannot transition issue from \"new\" to \"completed\"", nil)

	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", domainErr.Code)
}

func TestToDomainErrorWrappedDomainError(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewNotFound("issue", "abc"))

	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "no issue found with ID abc", domainErr.Message)
}

func TestToDomainErrorNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_first_last_name_key"}

	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, DuplicateNameMessage, domainErr.Message)
}

func TestToDomainErrorForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", Message: "insert violates foreign key"}

	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
}

func TestToDomainErrorUnknownBecomesInternal(t *testing.T) {
	domainErr := ToDomainError(errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "internal server error", domainErr.Message)
}
