// Package ctxutil moves request scoped values from gin into context.Context
// so the persistence layer can log them.
package ctxutil

import (
	"context"

	"erp/api/response"
	"erp/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context carrying the gin request id
func WithRequestID(c *gin.Context) context.Context {
	return persistence.ContextWithRequestID(c.Request.Context(), response.GetRequestID(c))
}

// RequestIDFromContext reads the id back, empty when absent
func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
