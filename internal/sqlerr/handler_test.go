package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/social-scores/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert supervisor: %w", &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "supervisors",
		ConstraintName: "unique_supervisors_email",
	})

	httpErr := httpError(t, HandleError(err))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "SUPERVISOR_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Supervisor with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorForeignKey(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", TableName: "scores", ColumnName: "social_network_id"}

	httpErr := httpError(t, HandleError(err))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "SCORE_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Social Network does not exist", httpErr.Message)
}

func TestHandleErrorNotNull(t *testing.T) {
	err := &pgconn.PgError{Code: "23502", TableName: "users", ColumnName: "Name"}

	httpErr := httpError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
	assert.Equal(t, "The Name is required", httpErr.Message)
}

func TestHandleErrorCheck(t *testing.T) {
	err := &pgconn.PgError{Code: "23514", TableName: "social_networks", ColumnName: "name"}

	httpErr := httpError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "SOCIAL_NETWORK_INVALID", httpErr.Code)
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := httpError(t, HandleError(NotFound("social_networks")))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Social Network not found", httpErr.Message)
}

func TestHandleErrorPassThrough(t *testing.T) {
	orig := errs.NewForbiddenError("nope", true)
	assert.Same(t, orig, HandleError(orig))

	httpErr := httpError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	httpErr = httpError(t, HandleError(&pgconn.PgError{Code: "53300"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Severity: "FATAL", Message: "dup", TableName: "users"}
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", pgErr)))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(pgErr)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))

	converted := ConvertPgError(pgErr)
	assert.Equal(t, SeverityFatal, converted.Severity)
	assert.Equal(t, "FATAL unique_violation (23505) on users: dup", converted.Error())
	assert.ErrorIs(t, converted, pgErr)
}

func TestMapping(t *testing.T) {
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("XX000"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
	assert.Equal(t, SeverityNotice, MapSeverity("NOTICE"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_supervisors_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("supervisors_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_users"))
}
