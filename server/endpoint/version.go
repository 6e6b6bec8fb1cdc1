package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/faber/version"
)

// Version reports build information.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"version":    info.Version,
			"commit":     info.Commit,
			"build_time": info.BuildTime,
			"go_version": info.GoVersion,
			"dirty":      info.Dirty,
			"release":    info.IsRelease(),
		})
	}
}
