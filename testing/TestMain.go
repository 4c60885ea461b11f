package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

// Secret used by tests that need a token manager.
const JWTSecret = "test-secret-0123456789abcdef0123456789"

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("DASHBOARD_TEST_MODE", "1")
		if os.Getenv("JWT_SECRET") == "" {
			_ = os.Setenv("JWT_SECRET", JWTSecret)
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
