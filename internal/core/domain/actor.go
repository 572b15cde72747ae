package domain

import "context"

type actorKey struct{}

// WithActor returns a copy of ctx carrying the id of the authenticated user.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the authenticated user id stored by WithActor, if any.
func ActorFrom(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}
