package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes the standard success envelope.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes the standard error envelope. errCode is the stable
// machine-checkable code (rendered as "error.<code>"), message is for
// humans.
func JSONError(c *gin.Context, status int, errCode, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "error." + errCode,
			"message": message,
		},
	})
}
