package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/zurichjs/rewards/internal/types"
)

// RequestIDMiddleware propagates the caller's request ID, minting one
// when the header is absent.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)
	c.Next()
}
