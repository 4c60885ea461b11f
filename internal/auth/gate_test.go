package auth

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

type countingVerifier struct {
	calls int
	inner CredentialVerifier
}

func (v *countingVerifier) Verify(raw string) (Claim, error) {
	v.calls++
	return v.inner.Verify(raw)
}

func requestWith(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestGateValidManagerToken(t *testing.T) {
	m := managerAt(t, base)
	raw, _, err := m.Issue("u1", rbac.RoleManager)
	require.NoError(t, err)

	res := NewGate(m).Authenticate(requestWith("Bearer " + raw))
	require.True(t, res.Authenticated)
	require.NoError(t, res.Err)
	assert.Equal(t, rbac.RoleManager, res.Claim.Role)
	assert.True(t, rbac.HasPermission(res.Claim.Role, rbac.DeleteProduct))
}

func TestGateExpiredToken(t *testing.T) {
	raw, _, err := managerAt(t, base).Issue("u1", rbac.RoleManager)
	require.NoError(t, err)

	res := NewGate(managerAt(t, base.Add(65*time.Minute))).Authenticate(requestWith("Bearer " + raw))
	assert.False(t, res.Authenticated)
	assert.ErrorIs(t, res.Err, ErrInvalidCredential)
	assert.Equal(t, Claim{}, res.Claim)
}

func TestGateMalformedHeadersSkipVerifier(t *testing.T) {
	v := &countingVerifier{inner: managerAt(t, base)}
	gate := NewGate(v)
	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "Token abc", "Bearer a b", "abc"} {
		res := gate.Authenticate(requestWith(header))
		assert.False(t, res.Authenticated, header)
		assert.ErrorIs(t, res.Err, ErrMissingOrMalformedHeader, header)
	}
	assert.Zero(t, v.calls)
}

func TestGateAcceptsCaseInsensitiveScheme(t *testing.T) {
	m := managerAt(t, base)
	raw, _, err := m.Issue("u1", rbac.RoleViewer)
	require.NoError(t, err)
	assert.True(t, NewGate(m).Authenticate(requestWith("bearer "+raw)).Authenticated)
}

type recordFailures struct{ reasons []string }

func (r *recordFailures) RecordAuthFailure(reason string) { r.reasons = append(r.reasons, reason) }

func TestRequireAuth(t *testing.T) {
	m := managerAt(t, base)
	raw, _, err := m.Issue("u7", rbac.RoleSalesRep)
	require.NoError(t, err)

	metrics := &recordFailures{}
	var logs bytes.Buffer
	mw := Middleware{Gate: NewGate(m), Metrics: metrics, Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	var seen Claim
	h := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith("Bearer "+raw))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u7", seen.UserID)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing or malformed authorization header")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith("Bearer "+raw+"x"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credential")
	assert.NotContains(t, rec.Body.String(), "signature")

	assert.Equal(t, []string{"missing_header", "bad_signature"}, metrics.reasons)
}
