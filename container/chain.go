package container

import "reflect"

// Chain composes container operations fluently. The first failure sticks:
// every later call is skipped and Err reports that failure.
//
// Example:
//
//	err := c.Chain().
//		Register("dsn", "postgres://localhost").
//		Register("db", newDB).
//		Freeze("db").
//		Err()
type Chain struct {
	c   *Container
	err error
}

// Chain starts a fluent sequence of operations on c.
func (c *Container) Chain() *Chain {
	return &Chain{c: c}
}

func (ch *Chain) do(op func() error) *Chain {
	if ch.err == nil {
		ch.err = op()
	}
	return ch
}

// Register is Container.Register.
func (ch *Chain) Register(name string, value any) *Chain {
	return ch.do(func() error { return ch.c.Register(name, value) })
}

// Protect is Container.Protect.
func (ch *Chain) Protect(name string, fn any) *Chain {
	return ch.do(func() error { return ch.c.Protect(name, fn) })
}

// Update is Container.Update.
func (ch *Chain) Update(name string, value any) *Chain {
	return ch.do(func() error { return ch.c.Update(name, value) })
}

// Remove is Container.Remove.
func (ch *Chain) Remove(id string) *Chain {
	return ch.do(func() error { return ch.c.Remove(id) })
}

// Freeze is Container.Freeze.
func (ch *Chain) Freeze(id string) *Chain {
	return ch.do(func() error { return ch.c.Freeze(id) })
}

// Unfreeze is Container.Unfreeze.
func (ch *Chain) Unfreeze(id string) *Chain {
	return ch.do(func() error { return ch.c.Unfreeze(id) })
}

// Load is Container.Load.
func (ch *Chain) Load(things map[string]any) *Chain {
	return ch.do(func() error { return ch.c.Load(things) })
}

// Extend is Container.Extend.
func (ch *Chain) Extend(id string, fn func(obj any, c *Container) (any, error)) *Chain {
	return ch.do(func() error { return ch.c.Extend(id, fn) })
}

// Get ends the chain by resolving name. A previous failure is returned
// unchanged and nothing is resolved.
func (ch *Chain) Get(name string, args Args) (any, error) {
	return ch.GetAs(name, args, nil)
}

// GetAs is Get with a required kind, see Container.GetAs.
func (ch *Chain) GetAs(name string, args Args, kind reflect.Type) (any, error) {
	if ch.err != nil {
		return nil, ch.err
	}
	return ch.c.GetAs(name, args, kind)
}

// Err returns the first failure of the chain, if any.
func (ch *Chain) Err() error { return ch.err }

// Container returns the underlying container.
func (ch *Chain) Container() *Container { return ch.c }
