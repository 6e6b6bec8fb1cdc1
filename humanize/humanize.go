// Package humanize renders a container as a JSON-friendly snapshot for
// inspection and debugging.
package humanize

import (
	"reflect"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/kbukum/faber/container"
)

const (
	anonymousFunction = "{{Anonymous function}}"
	instancePrefix    = "{{Instance of: "
)

// Info is the snapshot of a container.
type Info struct {
	ID            string                             `json:"id"`
	Hash          string                             `json:"hash"`
	Properties    map[string]any                     `json:"properties"`
	Factories     []string                           `json:"factories"`
	CachedObjects map[string][]container.ObjectInfo `json:"cached_objects"`
	Frozen        []string                           `json:"frozen"`
}

// Humanize builds the snapshot of c. Cached objects are grouped by the
// entry that created them; groups are sorted by key.
func Humanize(c *container.Container) *Info {
	info := &Info{
		ID:            c.ID(),
		Hash:          c.Token(),
		Properties:    make(map[string]any),
		Factories:     c.FactoryIDs(),
		CachedObjects: make(map[string][]container.ObjectInfo),
		Frozen:        c.FrozenIDs(),
	}

	for _, id := range c.PropIDs() {
		value, err := c.Prop(id)
		if err != nil {
			// removed meanwhile
			continue
		}
		info.Properties[id] = Describe(value)
	}

	for key, obj := range c.ObjectsInfo() {
		index := ObjectIndex(key, info.Hash)
		info.CachedObjects[index] = append(info.CachedObjects[index], obj)
	}
	for _, group := range info.CachedObjects {
		sort.Slice(group, func(i, j int) bool { return group[i].Key < group[j].Key })
	}
	return info
}

// JSON encodes the snapshot with indentation.
func (i *Info) JSON() ([]byte, error) {
	return json.MarshalIndent(i, "", "  ")
}

// Describe returns v as it appears in a snapshot: callables and struct
// instances are replaced by a placeholder, other values are kept.
func Describe(v any) any {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Func:
		return anonymousFunction
	case reflect.Struct, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return instancePrefix + t.String() + "}}"
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return instancePrefix + t.String() + "}}"
		}
	}
	return v
}

// ObjectIndex returns the entry name an object key was derived from, given
// the container hash embedded in every key.
func ObjectIndex(key, hash string) string {
	if hash == "" {
		return key
	}
	if idx := strings.Index(key, "_"+hash); idx != -1 {
		return key[:idx]
	}
	return key
}
