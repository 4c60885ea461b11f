package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("product %w", ErrNotFound), http.StatusNotFound},
		{"duplicate", fmt.Errorf("%w: code", ErrDuplicate), http.StatusConflict},
		{"conflict", ErrConflict, http.StatusConflict},
		{"validation sentinel", ErrValidation, http.StatusBadRequest},
		{"forbidden", fmt.Errorf("%w: insufficient permissions", ErrForbidden), http.StatusForbidden},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("dial tcp 10.0.0.3:5432: refused"))
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestRespondErrorValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("create: %w", &ValidationError{Fields: map[string]string{
		"email": "is required",
		"name":  "is required",
	}}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "is required", problem.Errors["email"])
	assert.Len(t, problem.Errors, 2)
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "bad", "a": "worse"}}
	assert.Equal(t, "validation failed: a: worse; b: bad", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	var target map[string]any
	err := DecodeJSON(req, &target)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42", "id")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, err := ParseID(raw, "id")
		assert.ErrorIs(t, err, ErrValidation, raw)
	}
}

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, http.StatusCreated, map[string]string{"id": "1"}, "created")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":"1"},"message":"created"}`, rec.Body.String())
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(fmt.Errorf("x: %w", ErrNotFound)))
	assert.True(t, IsClientError(Invalid("a", "b")))
	assert.False(t, IsClientError(errors.New("boom")))
	assert.False(t, IsClientError(nil))
}
