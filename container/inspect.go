package container

import "sort"

// IsFactory reports whether name holds a callable that is not protected.
func (c *Container) IsFactory(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isFactory(name)
}

// IsProp reports whether name is registered and is not a factory.
func (c *Container) IsProp(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isProp(name)
}

// IsProtected reports whether name was stored with Protect.
func (c *Container) IsProtected(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.protected[name]
	return ok
}

// IsFrozen reports whether an entry name or object key is frozen.
func (c *Container) IsFrozen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.frozen[id]
	return ok
}

// IsCachedObject reports whether key holds a cached object.
func (c *Container) IsCachedObject(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.objects[key]
	return ok
}

// PropIDs returns the names of all properties, sorted.
func (c *Container) PropIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.context))
	for name := range c.context {
		if c.isProp(name) {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids
}

// FactoryIDs returns the names of all active factories, sorted.
func (c *Container) FactoryIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.context))
	for name := range c.context {
		if c.isFactory(name) {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids
}

// FrozenIDs returns every frozen name and object key, sorted.
func (c *Container) FrozenIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedKeys(c.frozen)
}

// ObjectKeys returns the keys of all cached objects, sorted.
func (c *Container) ObjectKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedKeys(c.objects)
}

// ObjectsInfo returns a copy of the cached object metadata by key.
func (c *Container) ObjectsInfo() map[string]ObjectInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	info := make(map[string]ObjectInfo, len(c.objectsInfo))
	for k, v := range c.objectsInfo {
		info[k] = v
	}
	return info
}

// Len returns the number of registered entries.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.context)
}

// isFactory must be called with mu held.
func (c *Container) isFactory(name string) bool {
	e, ok := c.context[name]
	if !ok || !isCallable(e.value) {
		return false
	}
	_, protected := c.protected[name]
	return !protected
}

// isProp must be called with mu held.
func (c *Container) isProp(name string) bool {
	_, ok := c.context[name]
	return ok && !c.isFactory(name)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
