package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("list users: %w", NewNotFoundMessage("no users found"))

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "no users found", de.Message)
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	require.NotNil(t, de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Nil(t, ToDomainError(nil))
}

func TestBadRequestCarriesRawMessage(t *testing.T) {
	cause := errors.New("connection refused")
	de := ToDomainError(NewBadRequest(cause))
	assert.Equal(t, "connection refused", de.Message)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
}

func TestConflictUnwraps(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewConflict("email already registered", map[string]any{"email": "a@b.com"}, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusConflict, ToDomainError(err).HTTPStatus)
	assert.Equal(t, "email already registered: duplicate key", err.Error())
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", CodeForStatus(http.StatusNotFound))
	assert.Equal(t, "METHOD_NOT_ALLOWED", CodeForStatus(http.StatusMethodNotAllowed))
	assert.Equal(t, "INTERNAL_ERROR", CodeForStatus(http.StatusBadGateway))
	assert.Equal(t, "BAD_REQUEST", CodeForStatus(http.StatusUnprocessableEntity))
}
