package container

import (
	"fmt"
	"reflect"

	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

// Get returns the value registered under name. Properties are returned as
// stored and args are ignored. Factories are invoked on the first request for
// a given argument set and the result is cached under ObjectKey(name, args).
func (c *Container) Get(name string, args Args) (any, error) {
	return c.GetAs(name, args, nil)
}

// GetAs is Get with a required kind: when kind is not nil, a factory-built
// object that is not assignable to kind fails with TYPE_MISMATCH.
func (c *Container) GetAs(name string, args Args, kind reflect.Type) (any, error) {
	if err := validateID(name); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.isProp(name) {
		value := c.context[name].value
		c.mu.Unlock()
		return c.filter(c.propFilters, name, value), nil
	}

	key, err := c.objectKey(name, args)
	if err != nil {
		_, registered := c.context[name]
		c.mu.Unlock()
		if !registered {
			return nil, errors.UnknownID(name)
		}
		return nil, err
	}

	obj, hit := c.objects[key]
	if hit {
		c.mu.Unlock()
		c.observer.CacheHit(name, key)
	} else {
		obj, err = c.instantiate(name, key, args)
		if err != nil {
			return nil, err
		}
	}

	if err := checkKind(name, obj, kind); err != nil {
		return nil, err
	}
	return c.filter(c.getFilters, name, obj), nil
}

// GetAndFreeze is GetAs followed by freezing the resolved object's key.
// Properties have no object key, so reading one freezes nothing. Failures
// freeze nothing.
func (c *Container) GetAndFreeze(name string, args Args, kind reflect.Type) (any, error) {
	obj, err := c.GetAs(name, args, kind)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isProp(name) {
		return obj, nil
	}
	if key, err := c.objectKey(name, args); err == nil {
		if _, cached := c.objects[key]; cached {
			c.frozen[key] = struct{}{}
		}
	}
	return obj, nil
}

// Make invokes the factory registered under name with args, bypassing the
// cache. Every call returns a fresh value.
func (c *Container) Make(name string, args Args) (any, error) {
	if err := validateID(name); err != nil {
		return nil, err
	}
	c.mu.Lock()
	if !c.isFactory(name) {
		c.mu.Unlock()
		return nil, errors.UnknownID(name).WithDetail("reason", "not a factory")
	}
	fn := c.context[name].value
	c.mu.Unlock()

	return c.invoke(name, fn, args)
}

// Prop returns the raw value of a property, including protected callables.
// Factories fail with WRONG_KIND.
func (c *Container) Prop(name string) (any, error) {
	if err := validateID(name); err != nil {
		return nil, err
	}
	c.mu.Lock()
	switch {
	case c.isProp(name):
		value := c.context[name].value
		c.mu.Unlock()
		return c.filter(c.propFilters, name, value), nil
	case c.isFactory(name):
		c.mu.Unlock()
		return nil, errors.WrongKind(name, "is a factory and can't be retrieved as a property, use Protect to store callables as properties")
	default:
		c.mu.Unlock()
		return nil, errors.UnknownID(name)
	}
}

// instantiate resolves a cache miss. It is called with mu held and returns
// with mu released. Concurrent misses for the same key share one factory
// call. The result is cached only if the entry was not replaced or removed
// while the factory ran, and the key is frozen if the name is frozen when
// the result is stored.
func (c *Container) instantiate(name, key string, args Args) (any, error) {
	e, ok := c.context[name]
	if !ok {
		c.mu.Unlock()
		return nil, errors.UnknownID(name)
	}

	if p, running := c.inflight[key]; running {
		c.mu.Unlock()
		<-p.done
		return p.value, p.err
	}

	propagated := false
	if _, frozen := c.frozen[name]; frozen {
		if _, keyFrozen := c.frozen[key]; !keyFrozen {
			c.frozen[key] = struct{}{}
			propagated = true
		}
	}

	p := &pending{done: make(chan struct{})}
	c.inflight[key] = p
	c.mu.Unlock()
	c.observer.CacheMiss(name, key)

	completed := false
	defer func() {
		if !completed {
			p.err = errors.FactoryFailed(name, fmt.Errorf("factory panicked"))
		}
		c.mu.Lock()
		delete(c.inflight, key)
		if p.err == nil && c.context[name] == e {
			if _, frozen := c.frozen[name]; frozen {
				c.frozen[key] = struct{}{}
			}
			c.objects[key] = p.value
			c.objectsInfo[key] = ObjectInfo{
				Key:     key,
				Entry:   name,
				Type:    typeName(p.value),
				NumArgs: len(args),
			}
		} else if propagated {
			delete(c.frozen, key)
		}
		c.mu.Unlock()
		close(p.done)
	}()

	p.value, p.err = c.invoke(name, e.value, args)
	completed = true
	if p.err == nil {
		c.log.Debug("object resolved", logger.Fields(logger.FieldEntry, name, logger.FieldKey, key))
	}
	return p.value, p.err
}

func (c *Container) filter(filters []Filter, id string, value any) any {
	for _, f := range filters {
		value = f(c, id, value)
	}
	return value
}

func checkKind(name string, obj any, kind reflect.Type) error {
	if kind == nil {
		return nil
	}
	if obj == nil {
		return errors.TypeMismatch(name, "nil", kind.String())
	}
	if t := reflect.TypeOf(obj); !t.AssignableTo(kind) {
		return errors.TypeMismatch(name, t.String(), kind.String())
	}
	return nil
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
