package container

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

var (
	containerType = reflect.TypeOf((*Container)(nil))
	argsType      = reflect.TypeOf(Args(nil))
	mapType       = reflect.TypeOf(map[string]any(nil))
	contextType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

// invoke calls the factory fn registered under name. It never holds mu.
func (c *Container) invoke(name string, fn any, args Args) (any, error) {
	started := time.Now()
	value, err := c.call(name, fn, args)
	d := time.Since(started)

	if err != nil {
		if _, ok := errors.AsAppError(err); !ok {
			err = errors.FactoryFailed(name, err)
		}
		c.log.Warn("factory failed", logger.MergeFields(
			logger.ErrorFields("make", err),
			logger.Fields(logger.FieldEntry, name, logger.FieldNumArgs, len(args)),
		))
	} else {
		c.log.Debug("factory invoked", logger.MergeFields(
			logger.DurationFields("make", d),
			logger.Fields(logger.FieldEntry, name, logger.FieldNumArgs, len(args)),
		))
	}
	c.observer.FactoryInvoked(name, started, d, err)
	return value, err
}

func (c *Container) call(name string, fn any, args Args) (any, error) {
	switch f := fn.(type) {
	case Factory:
		return f(c, args)
	case func(*Container, Args) (any, error):
		return f(c, args)
	case func(*Container) any:
		return f(c), nil
	case func() any:
		return f(), nil
	}
	return c.callReflect(name, fn, args)
}

func (c *Container) callReflect(name string, fn any, args Args) (any, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.IsVariadic() {
		return nil, errors.BadValue(name, fmt.Sprintf("variadic factory %s is not supported", t))
	}

	in := make([]reflect.Value, t.NumIn())
	for i := range in {
		switch pt := t.In(i); {
		case pt == containerType:
			in[i] = reflect.ValueOf(c)
		case pt == argsType || pt == mapType:
			in[i] = reflect.ValueOf(args).Convert(pt)
		case pt == contextType:
			in[i] = reflect.ValueOf(context.Background())
		default:
			return nil, errors.BadValue(name, fmt.Sprintf("unsupported factory parameter %s", pt))
		}
	}

	results := v.Call(in)
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if !t.Out(1).Implements(errorType) {
			return nil, errors.BadValue(name, "second factory result must be an error")
		}
		if errVal := results[1].Interface(); errVal != nil {
			return nil, errVal.(error)
		}
		return results[0].Interface(), nil
	default:
		return nil, errors.BadValue(name, "factory must return (value) or (value, error)")
	}
}
