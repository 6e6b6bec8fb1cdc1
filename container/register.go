package container

import (
	"reflect"
	"sort"

	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

// Register adds a property or a factory under name. A callable value is a
// factory unless name is protected. Registering an existing name is a
// no-op: the first value wins.
//
// Factories are either of type Factory or any func whose parameters are
// drawn from *Container, Args and context.Context and which returns a value
// or a (value, error) pair.
func (c *Container) Register(name string, value any) error {
	if err := validateID(name); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(name, value)
	return nil
}

// register must be called with mu held.
func (c *Container) register(name string, value any) bool {
	if _, exists := c.context[name]; exists {
		return false
	}
	c.context[name] = &entry{value: value}
	c.log.Debug("entry registered", logger.Fields(logger.FieldEntry, name, "factory", isCallable(value)))
	return true
}

// Protect stores a callable as a plain property: Get and Prop return the
// callable itself instead of invoking it. Protection is permanent for name.
// Like Register, Protect keeps an existing value.
func (c *Container) Protect(name string, fn any) error {
	if err := validateID(name); err != nil {
		return err
	}
	if !isCallable(fn) {
		return errors.BadValue(name, "only callables can be protected")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(name, fn)
	c.protected[name] = struct{}{}
	return nil
}

// Load registers every entry of things. Empty names are skipped. Entries are
// registered in name order so the outcome does not depend on map iteration.
func (c *Container) Load(things map[string]any) error {
	names := make([]string, 0, len(things))
	for name := range things {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		c.register(name, things[name])
	}
	return nil
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}
