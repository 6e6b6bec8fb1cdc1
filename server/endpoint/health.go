package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/observability"
	"github.com/kbukum/faber/version"
)

// Health reports the service with one component per registered container.
// A down component turns the response into a 503.
func Health(serviceName string, registry *container.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := observability.NewServiceHealth(serviceName, version.Get().Version)
		for _, id := range registry.IDs() {
			if cont, ok := registry.Lookup(id); ok {
				health.AddComponent(observability.ContainerHealth(cont))
			}
		}

		status := http.StatusOK
		if health.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"service":    health.Service,
			"status":     health.Status,
			"version":    health.Version,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": health.Components,
		})
	}
}
