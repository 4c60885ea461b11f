package shared

import (
	"context"
	"log/slog"
)

// Invalidator drops cached read models after a write.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// MutationHooks run after a successful write. Failures are logged, never
// returned, since the write has already committed.
type MutationHooks struct {
	Audit  Auditor
	Cache  Invalidator
	Logger *slog.Logger
}

// After records the audit entry and invalidates report caches.
func (h MutationHooks) After(ctx context.Context, entry AuditLog) {
	if h.Audit != nil {
		if err := h.Audit.Record(ctx, entry); err != nil {
			h.log().Warn("audit record failed",
				slog.String("entity", entry.Entity),
				slog.String("action", entry.Action),
				slog.Any("error", err))
		}
	}
	if h.Cache != nil {
		if err := h.Cache.Bump(ctx); err != nil {
			h.log().Warn("cache invalidation failed", slog.Any("error", err))
		}
	}
}

func (h MutationHooks) log() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}
