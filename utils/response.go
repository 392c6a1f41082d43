package utils

import (
	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestId"
)

// Envelope wraps every successful response body.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Error     any    `json:"error"`
	Meta      any    `json:"meta"`
	RequestID string `json:"requestId"`
}

// RequestID returns the id assigned by the request id middleware.
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(RequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// Success writes data inside the success envelope.
func Success(c *gin.Context, status int, data any) {
	SuccessWithMeta(c, status, data, nil)
}

func SuccessWithMeta(c *gin.Context, status int, data, meta any) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Meta:      meta,
		RequestID: RequestID(c),
	})
}
