package middleware

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier so log lines and error
// reports can be correlated. An incoming header wins; otherwise a fresh
// ObjectID hex is assigned.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = primitive.NewObjectID().Hex()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
