package identity

import (
	"context"

	"qual-store/internal/models"
)

// Caller is the authenticated principal of a single operation.
type Caller struct {
	Username string
	Role     models.RoleName
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func FromContext(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || c.Username == "" {
		return Caller{}, false
	}
	return c, true
}
