package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/humanize"
)

// EntryView is the response of the entry route.
type EntryView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Key       string `json:"key,omitempty"`
	Type      string `json:"type,omitempty"`
	Protected bool   `json:"protected,omitempty"`
	Frozen    bool   `json:"frozen"`
	Value     any    `json:"value"`
}

// Containers lists the ids of the registered containers.
func Containers(registry *container.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"containers": registry.IDs()})
	}
}

// Container renders the humanized snapshot of one container.
func Container(registry *container.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		cont, err := lookup(registry, c.Param("id"))
		if err != nil {
			RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, humanize.Humanize(cont))
	}
}

// Entry returns a property, or resolves a factory with the query
// parameters as args. Resolution goes through the cache like any Get.
func Entry(registry *container.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		cont, err := lookup(registry, c.Param("id"))
		if err != nil {
			RespondWithError(c, err)
			return
		}
		name := c.Param("name")

		if cont.IsProp(name) {
			value, err := cont.Prop(name)
			if err != nil {
				RespondWithError(c, err)
				return
			}
			c.JSON(http.StatusOK, EntryView{
				ID:        name,
				Kind:      "property",
				Protected: cont.IsProtected(name),
				Frozen:    cont.IsFrozen(name),
				Value:     humanize.Describe(value),
			})
			return
		}

		args := queryArgs(c)
		obj, err := cont.Get(name, args)
		if err != nil {
			RespondWithError(c, err)
			return
		}
		key, err := cont.ObjectKey(name, args)
		if err != nil {
			RespondWithError(c, err)
			return
		}
		info := cont.ObjectsInfo()[key]
		c.JSON(http.StatusOK, EntryView{
			ID:     name,
			Kind:   "factory",
			Key:    key,
			Type:   info.Type,
			Frozen: cont.IsFrozen(key),
			Value:  humanize.Describe(obj),
		})
	}
}

func lookup(registry *container.Registry, id string) (*container.Container, error) {
	cont, ok := registry.Lookup(id)
	if !ok {
		return nil, errors.UnknownID(id).WithDetail("reason", "no such container")
	}
	return cont, nil
}

// queryArgs keeps the first value of each query parameter.
func queryArgs(c *gin.Context) container.Args {
	query := c.Request.URL.Query()
	if len(query) == 0 {
		return nil
	}
	args := make(container.Args, len(query))
	for k, v := range query {
		if len(v) > 0 {
			args[k] = v[0]
		}
	}
	return args
}
