package container

import (
	"reflect"

	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

// Update replaces the value stored under name. Callables can only be
// replaced by callables. Updating an active factory drops the objects it
// cached, except frozen ones. Protected and frozen status are kept.
func (c *Container) Update(name string, value any) error {
	if err := validateID(name); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.context[name]
	if !ok {
		return errors.UnknownID(name)
	}
	if _, frozen := c.frozen[name]; frozen {
		return errors.Frozen(name, "updated")
	}
	if isCallable(current.value) && !isCallable(value) {
		return errors.BadValue(name, "a callable can only be replaced by another callable")
	}

	dropped := 0
	if c.isFactory(name) {
		dropped = c.dropObjects(name)
	}
	c.context[name] = &entry{value: value}
	c.log.Debug("entry updated", logger.Fields(logger.FieldEntry, name, logger.FieldCascade, dropped))
	return nil
}

// Remove deletes an entry name or a single cached object key. Removing a
// name drops the objects it cached, except frozen ones, which stay
// retrievable by key.
func (c *Container) Remove(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, cached := c.objects[id]
	_, registered := c.context[id]
	if !cached && !registered {
		return errors.UnknownID(id)
	}
	if _, frozen := c.frozen[id]; frozen {
		return errors.Frozen(id, "removed")
	}

	if cached {
		delete(c.objects, id)
		delete(c.objectsInfo, id)
		c.log.Debug("object removed", logger.Fields(logger.FieldKey, id))
		return nil
	}

	dropped := c.dropObjects(id)
	delete(c.context, id)
	delete(c.protected, id)
	delete(c.prefixes, id)
	c.log.Debug("entry removed", logger.Fields(logger.FieldEntry, id, logger.FieldCascade, dropped))
	return nil
}

// Extend replaces a cached object with the result of fn. id is either an
// object key or an entry name, which stands for the object cached without
// args. The replacement must have the same dynamic type as the original.
func (c *Container) Extend(id string, fn func(obj any, c *Container) (any, error)) error {
	if err := validateID(id); err != nil {
		return err
	}
	if fn == nil {
		return errors.BadValue(id, "extend callback is nil")
	}

	c.mu.Lock()
	key := id
	if _, cached := c.objects[key]; !cached {
		key = c.prefix(id)
	}
	obj, cached := c.objects[key]
	if !cached {
		c.mu.Unlock()
		return errors.UnknownID(id).WithDetail("key", key)
	}
	if _, frozen := c.frozen[key]; frozen {
		c.mu.Unlock()
		return errors.Frozen(key, "extended")
	}
	c.mu.Unlock()

	updated, err := fn(obj, c)
	if err != nil {
		if _, ok := errors.AsAppError(err); !ok {
			err = errors.FactoryFailed(id, err)
		}
		return err
	}
	if reflect.TypeOf(updated) != reflect.TypeOf(obj) {
		return errors.TypeMismatch(key, typeName(updated), typeName(obj))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, frozen := c.frozen[key]; frozen {
		return errors.Frozen(key, "extended")
	}
	if _, still := c.objects[key]; !still {
		return errors.UnknownID(id).WithDetail("key", key)
	}
	c.objects[key] = updated
	c.log.Debug("object extended", logger.Fields(logger.FieldKey, key))
	return nil
}

// dropObjects deletes the non-frozen objects cached for name and returns how
// many were deleted. Must be called with mu held.
func (c *Container) dropObjects(name string) int {
	dropped := 0
	for key := range c.objects {
		if !c.owns(name, key) {
			continue
		}
		if _, frozen := c.frozen[key]; frozen {
			continue
		}
		delete(c.objects, key)
		delete(c.objectsInfo, key)
		dropped++
	}
	return dropped
}
