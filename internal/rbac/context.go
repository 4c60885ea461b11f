package rbac

import "context"

// Principal is the authenticated actor a decision is made for.
type Principal interface {
	PrincipalID() string
	PrincipalRole() Role
}

type principalKey struct{}

// ContextWithPrincipal stores p on ctx.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored on ctx, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p != nil
}

// ActorID returns the id of the principal on ctx, or "" when there is none.
func ActorID(ctx context.Context) string {
	if p, ok := PrincipalFromContext(ctx); ok {
		return p.PrincipalID()
	}
	return ""
}
