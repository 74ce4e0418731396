package util

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the uniform `{message}` error body.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"message": msg})
}

// Message writes a 200 `{message}` acknowledgement.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// ServerError logs the underlying failure and answers with a generic
// message. The detail is only exposed in debug mode.
func ServerError(c *gin.Context, err error) {
	log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	msg := "Internal server error"
	if gin.Mode() == gin.DebugMode && err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}
