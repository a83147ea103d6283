package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundMatchesSentinel(t *testing.T) {
	err := NewNotFound("Team", "abc-123")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Contains(t, err.Error(), "Team with id abc-123")
}

func TestNewNamesNotFoundListsMissing(t *testing.T) {
	err := NewNamesNotFound("User", []string{"alice", "bob"})

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "some users not found")
	assert.Contains(t, err.Details, "alice, bob")
}

func TestNewConflict(t *testing.T) {
	err := NewConflict("Task", "status is terminal")

	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "status is terminal")
}

func TestFromDatabaseTranslation(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantStatus int
		wantCheck  func(error) bool
	}{
		{
			name:       "postgres duplicate key",
			cause:      errors.New(`duplicate key value violates unique constraint "idx_teams_name"`),
			wantStatus: http.StatusConflict,
			wantCheck:  IsConflict,
		},
		{
			name:       "sqlite unique constraint",
			cause:      errors.New("UNIQUE constraint failed: teams.name"),
			wantStatus: http.StatusConflict,
			wantCheck:  IsConflict,
		},
		{
			name:       "postgres foreign key",
			cause:      errors.New(`insert or update on table "users" violates foreign key constraint`),
			wantStatus: http.StatusBadRequest,
			wantCheck:  IsBadRequest,
		},
		{
			name:       "anything else",
			cause:      errors.New("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantCheck:  IsInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDatabase("create", "Team", tt.cause)
			assert.Equal(t, tt.wantStatus, err.StatusCode)
			assert.True(t, tt.wantCheck(err))
			assert.Equal(t, tt.cause, err.Cause)
		})
	}
}

func TestGetFullErrorChainsCauses(t *testing.T) {
	root := errors.New("connection refused")
	inner := NewInternal("query failed", root)
	outer := &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInternal,
		Cause:      inner,
	}

	full := outer.GetFullError()
	assert.Contains(t, full, "query failed")
	assert.Contains(t, full, "connection refused")
}

func TestErrorsAsFindsApiErr(t *testing.T) {
	wrapped := NewBadRequest("offset must be a non-negative integer")

	var apiErr *ApiErr
	require.True(t, errors.As(error(wrapped), &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "offset must be a non-negative integer", apiErr.Details)
}
