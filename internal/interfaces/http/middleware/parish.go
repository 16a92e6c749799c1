package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parish/backend/internal/infrastructure/logger"
)

// Parish context keys
const (
	ParishIDKey       = "parish_id"
	ParishHeaderKey   = "X-Parish-ID"
	ParishQueryParam  = "parish_id"
	maxParishIDLength = 64
)

// ParishContext resolves the parish a request reports on. The parish_id
// query parameter wins over the X-Parish-ID header. A well-formed ID is
// stored on the gin context and in the request-scoped logger; missing or
// malformed IDs are left for the handler to reject.
func ParishContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query(ParishQueryParam))
		if raw == "" {
			raw = strings.TrimSpace(c.GetHeader(ParishHeaderKey))
		}
		if raw != "" && len(raw) <= maxParishIDLength {
			if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
				c.Set(ParishIDKey, id)
				ctx := logger.WithParishID(c.Request.Context(), id.String())
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

// GetParishID returns the parish resolved by ParishContext.
func GetParishID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ParishIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
