package auth

import (
	"errors"
	"fmt"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
)

var (
	// ErrMissingOrMalformedHeader means the Authorization header was absent
	// or not of the form "Bearer <token>".
	ErrMissingOrMalformedHeader = fmt.Errorf("%w: missing or malformed authorization header", httpx.ErrUnauthorized)
	// ErrInvalidCredential covers bad signatures, expiry and unknown roles.
	ErrInvalidCredential = fmt.Errorf("%w: invalid credential", httpx.ErrUnauthorized)
	// ErrInvalidLogin is returned for an unknown email or wrong password.
	ErrInvalidLogin = fmt.Errorf("%w: invalid email or password", httpx.ErrUnauthorized)
	// ErrWeakSecret rejects signing keys shorter than MinSecretLength.
	ErrWeakSecret = errors.New("auth: signing secret too short")
)
