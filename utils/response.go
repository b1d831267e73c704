package utils

import (
	"github.com/gin-gonic/gin"

	"grandstay-backend/failure"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONFailure writes an error response with the status code carried by the
// failure (500 for anything else).
func JSONFailure(c *gin.Context, err error) {
	JSONError(c, failure.GetCode(err), err.Error())
}
