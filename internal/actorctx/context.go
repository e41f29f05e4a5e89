// Package actorctx carries the authenticated actor through request contexts.
package actorctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ActorContextKey is the request context key for the authenticated actor ID.
type ActorContextKey struct{}

// WithActorID stores the actor ID in the context.
func WithActorID(ctx context.Context, actorID snowflake.ID) context.Context {
	return context.WithValue(ctx, ActorContextKey{}, actorID)
}

// ActorIDFromContext returns the actor ID from context, if set.
func ActorIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	switch typed := ctx.Value(ActorContextKey{}).(type) {
	case snowflake.ID:
		return typed, true
	case int64:
		return snowflake.ID(typed), true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
