package container

// Has reports whether name is a registered entry.
func (c *Container) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.context[name]
	return ok
}

// Read resolves name without args: factories are instantiated (and cached),
// properties are returned as stored.
func (c *Container) Read(name string) (any, error) {
	return c.Get(name, nil)
}

// Write registers value under name, or updates it when name already exists.
func (c *Container) Write(name string, value any) error {
	if c.Has(name) {
		return c.Update(name, value)
	}
	return c.Register(name, value)
}

// Delete removes an entry name or a cached object key.
func (c *Container) Delete(id string) error {
	return c.Remove(id)
}
