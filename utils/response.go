package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

// JSONError writes the error envelope every handler uses. details is
// omitted when nil.
func JSONError(c *gin.Context, code int, message string, details interface{}) {
	body := gin.H{"status": "error", "message": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(code, body)
}
