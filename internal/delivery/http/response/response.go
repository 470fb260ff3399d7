package response

import (
	"github.com/gin-gonic/gin"
)

// Ack is the body of operations that only report success.
type Ack struct {
	Success bool `json:"success"`
}

// Success writes data as the raw JSON body.
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// OK acknowledges an operation that has nothing else to return.
func OK(c *gin.Context, code int) {
	c.JSON(code, Ack{Success: true})
}

// Error writes a field -> message map, tagging the response with the
// request id when one was assigned.
func Error(c *gin.Context, code int, body interface{}) {
	if reqID, ok := c.Get("RequestID"); ok {
		if idStr, ok := reqID.(string); ok {
			c.Header("X-Request-ID", idStr)
		}
	}
	c.JSON(code, body)
}
