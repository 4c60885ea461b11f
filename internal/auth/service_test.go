package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
	"github.com/odyssey-erp/erp-dashboard/internal/users"
)

type emptyStore struct{}

func (emptyStore) FindByEmail(context.Context, string) (users.User, error) {
	return users.User{}, httpx.ErrNotFound
}

func (emptyStore) Create(_ context.Context, u users.User) (users.User, error) { return u, nil }

func TestLoginUnknownEmailStillComparesHash(t *testing.T) {
	tokens, err := NewTokenManager(TokenConfig{Secret: "0123456789abcdef0123456789abcdef", TTL: time.Hour})
	require.NoError(t, err)
	svc := NewService(emptyStore{}, tokens, shared.MutationHooks{}).WithHashCost(bcrypt.MinCost + 1)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidLogin)

	require.NotEmpty(t, svc.dummyHash)
	cost, err := bcrypt.Cost(svc.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}
