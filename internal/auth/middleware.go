package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
)

// TierResolver loads the tier of a subscriber allowed to read calls. It
// returns an error when the subscription is not running.
type TierResolver interface {
	SubscriberTier(ctx context.Context, userID uint64) (models.TierDescriptor, error)
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"message": msg,
		"data":    nil,
		"meta":    nil,
	})
}

// RequireRole verifies the bearer token and admits only the given roles.
func RequireRole(j JWT, roles ...string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(header, "Bearer ") {
			abort(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := j.Verify(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			abort(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), Identity{
			Subject: claims.Subject,
			Role:    claims.Role,
		}))
		c.Next()
	}
}

// RequireSubscription resolves the caller's tier. It must run after
// RequireRole(..., RoleSubscriber).
func RequireSubscription(resolver TierResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFromGin(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "missing identity")
			return
		}
		userID, err := strconv.ParseUint(id.Subject, 10, 64)
		if err != nil || userID == 0 {
			abort(c, http.StatusUnauthorized, "invalid subject")
			return
		}
		tier, err := resolver.SubscriberTier(c.Request.Context(), userID)
		switch apperr.KindOf(err) {
		case apperr.KindUnknown:
			if err != nil {
				abort(c, http.StatusInternalServerError, "failed to load subscription")
				return
			}
		case apperr.KindNotFound:
			abort(c, http.StatusUnauthorized, "unknown subscriber")
			return
		default:
			abort(c, http.StatusForbidden, "an active subscription is required")
			return
		}
		c.Request = c.Request.WithContext(WithTier(c.Request.Context(), tier))
		c.Next()
	}
}

// AuditWrites logs every admin write with the acting subject.
func AuditWrites(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		method := strings.ToUpper(c.Request.Method)
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			return
		}
		id, _ := IdentityFromGin(c)
		logger.Info("admin write",
			zap.String("method", method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("subject", id.Subject),
		)
	}
}
