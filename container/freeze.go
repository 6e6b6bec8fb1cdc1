package container

import (
	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

// Freeze pins an entry name or a cached object key against Update and
// Remove. Freezing a name also freezes every object already cached for it,
// and objects created for it later are frozen as they are cached.
func (c *Container) Freeze(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, cached := c.objects[id]; cached {
		c.frozen[id] = struct{}{}
		c.log.Debug("object frozen", logger.Fields(logger.FieldKey, id))
		return nil
	}
	if _, registered := c.context[id]; !registered {
		return errors.UnknownID(id)
	}

	c.frozen[id] = struct{}{}
	cascade := 0
	for key := range c.objects {
		if c.owns(id, key) {
			c.frozen[key] = struct{}{}
			cascade++
		}
	}
	c.log.Debug("entry frozen", logger.Fields(logger.FieldEntry, id, logger.FieldCascade, cascade))
	return nil
}

// Unfreeze reverses Freeze. Unfreezing a name also unfreezes every object
// key derived from it.
func (c *Container) Unfreeze(id string) error {
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
	if _, frozen := c.frozen[id]; !frozen {
		return errors.NotFrozen(id)
	}

	delete(c.frozen, id)
	if cached {
		c.log.Debug("object unfrozen", logger.Fields(logger.FieldKey, id))
		return nil
	}

	cascade := 0
	for key := range c.frozen {
		if c.owns(id, key) {
			delete(c.frozen, key)
			cascade++
		}
	}
	c.log.Debug("entry unfrozen", logger.Fields(logger.FieldEntry, id, logger.FieldCascade, cascade))
	return nil
}
