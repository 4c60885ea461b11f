package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// MinSecretLength is the minimum HMAC key size accepted.
const MinSecretLength = 32

// DefaultTokenTTL applies when TokenConfig.TTL is zero.
const DefaultTokenTTL = 8 * time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenConfig configures a TokenManager.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager validates cfg and returns a manager.
func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    cfg.Now,
	}, nil
}

// TTL reports the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for userID with role.
func (m *TokenManager) Issue(userID string, role rbac.Role) (string, Claim, error) {
	if userID == "" {
		return "", Claim{}, errors.New("auth: user id required")
	}
	if !role.Valid() {
		return "", Claim{}, fmt.Errorf("auth: issue: %w", rbac.ErrUnknownRole)
	}
	now := m.now().UTC().Truncate(time.Second)
	claim := Claim{
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(claim.IssuedAt),
			NotBefore: jwt.NewNumericDate(claim.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claim.ExpiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Claim{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, claim, nil
}

// Verify validates raw, which must be the token without its scheme prefix.
// Every failure wraps ErrInvalidCredential and returns a zero Claim.
func (m *TokenManager) Verify(raw string) (Claim, error) {
	if raw == "" {
		return Claim{}, ErrInvalidCredential
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	parsed := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, parsed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return Claim{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	if parsed.Subject == "" || parsed.IssuedAt == nil {
		return Claim{}, fmt.Errorf("%w: subject and issued-at required", ErrInvalidCredential)
	}
	role, err := rbac.ParseRole(parsed.Role)
	if err != nil {
		return Claim{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	return Claim{
		UserID:    parsed.Subject,
		Role:      role,
		IssuedAt:  parsed.IssuedAt.Time.UTC(),
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}, nil
}

// FailureReason buckets a verification error for metrics.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingOrMalformedHeader):
		return "missing_header"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, rbac.ErrUnknownRole):
		return "unknown_role"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	default:
		return "invalid"
	}
}
