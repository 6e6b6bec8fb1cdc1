package container

import (
	"fmt"
	"reflect"

	"github.com/kbukum/faber/errors"
)

// Resolve gets name with type safety. A value that is not a T fails with
// TYPE_MISMATCH.
//
// Example:
//
//	db, err := container.Resolve[*sql.DB](c, "db", nil)
func Resolve[T any](c *Container, name string, args Args) (T, error) {
	var zero T
	obj, err := c.Get(name, args)
	if err != nil {
		return zero, err
	}
	result, ok := obj.(T)
	if !ok {
		return zero, errors.TypeMismatch(name, typeName(obj), reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return result, nil
}

// MustResolve is Resolve that panics on failure.
func MustResolve[T any](c *Container, name string, args Args) T {
	result, err := Resolve[T](c, name, args)
	if err != nil {
		panic(fmt.Sprintf("faber: failed to resolve %s: %v", name, err))
	}
	return result
}

// TryResolve returns the zero value and false when name cannot be resolved
// as a T.
func TryResolve[T any](c *Container, name string, args Args) (T, bool) {
	result, err := Resolve[T](c, name, args)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
