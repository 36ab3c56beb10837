package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"calldesk/internal/models"
)

type Identity struct {
	Subject string
	Role    string
}

type identityKey struct{}
type tierKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func IdentityFromGin(c *gin.Context) (Identity, bool) {
	if c == nil || c.Request == nil {
		return Identity{}, false
	}
	return IdentityFromContext(c.Request.Context())
}

func WithTier(ctx context.Context, tier models.TierDescriptor) context.Context {
	return context.WithValue(ctx, tierKey{}, tier)
}

func TierFromGin(c *gin.Context) (models.TierDescriptor, bool) {
	if c == nil || c.Request == nil {
		return models.TierDescriptor{}, false
	}
	tier, ok := c.Request.Context().Value(tierKey{}).(models.TierDescriptor)
	return tier, ok
}
