package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/faber/logger"
)

// Recovery recovers from handler panics, logs the stack and answers with a
// 500 problem document.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered", logger.Fields(
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					logger.FieldRequestID, c.GetString(logger.FieldRequestID),
				))
				c.Header("Content-Type", "application/problem+json")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"type":     "about:blank",
					"title":    http.StatusText(http.StatusInternalServerError),
					"status":   http.StatusInternalServerError,
					"instance": c.Request.URL.Path,
				})
			}
		}()
		c.Next()
	}
}
