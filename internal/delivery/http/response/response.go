package response

import (
	"github.com/gin-gonic/gin"
)

// All responses share the envelope {success, message?, ...payload}. Error
// responses are always exactly {success:false, message}; the message is the
// only error detail clients ever see.

// Success sends a success response with a human-readable message
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": true, "message": message})
}

// Payload sends a success response carrying a named payload field,
// e.g. {"success":true, "user": {...}}
func Payload(c *gin.Context, code int, key string, value interface{}) {
	c.JSON(code, gin.H{"success": true, key: value})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}
