package auth

import (
	"net/http"
	"strings"
)

// CredentialVerifier validates a raw bearer token.
type CredentialVerifier interface {
	Verify(raw string) (Claim, error)
}

// Result is the outcome of Gate.Authenticate. Callers must branch on
// Authenticated before touching data.
type Result struct {
	Authenticated bool
	Claim         Claim
	Err           error
}

// Gate extracts and verifies the bearer credential of a request.
type Gate struct {
	Verifier CredentialVerifier
}

// NewGate constructs a Gate.
func NewGate(v CredentialVerifier) *Gate {
	return &Gate{Verifier: v}
}

// Authenticate reads only the Authorization header. It never panics on
// verifier errors and never calls the verifier for a malformed header.
func (g *Gate) Authenticate(r *http.Request) Result {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return Result{Err: ErrMissingOrMalformedHeader}
	}
	if g == nil || g.Verifier == nil {
		return Result{Err: ErrInvalidCredential}
	}
	claim, err := g.Verifier.Verify(token)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Authenticated: true, Claim: claim}
}

// bearerToken accepts "Bearer <token>" with a case-insensitive scheme and
// exactly one non-empty token.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
