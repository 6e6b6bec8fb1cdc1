package container

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/kbukum/faber/errors"
)

const digestSize = 16

// ObjectKey returns the cache key for name and args. With no args the key
// is the name's prefix, otherwise the prefix followed by a digest of the
// canonical encoding of args.
func (c *Container) ObjectKey(name string, args Args) (string, error) {
	if err := validateID(name); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.objectKey(name, args)
}

// objectKey must be called with mu held.
func (c *Container) objectKey(name string, args Args) (string, error) {
	prefix := c.prefix(name)
	if len(args) == 0 {
		return prefix, nil
	}
	digest, err := digestArgs(args)
	if err != nil {
		return "", errors.BadValue(name, "arguments cannot be serialized").WithCause(err)
	}
	return prefix + "_" + digest, nil
}

// prefix must be called with mu held. Only registered names are memoized.
func (c *Container) prefix(name string) string {
	if p, ok := c.prefixes[name]; ok {
		return p
	}
	p := name + "_" + c.token
	if _, registered := c.context[name]; registered {
		c.prefixes[name] = p
	}
	return p
}

// owns reports whether key was derived from name. Must be called with mu held.
func (c *Container) owns(name, key string) bool {
	prefix := c.prefix(name)
	return key == prefix || strings.HasPrefix(key, prefix+"_")
}

// digestArgs hashes the canonical encoding of args.
func digestArgs(args Args) (string, error) {
	var enc argEncoder
	if err := enc.encode(reflect.ValueOf(args), 0); err != nil {
		return "", err
	}
	h, err := blake2b.New(digestSize, nil)
	if err != nil {
		return "", err
	}
	h.Write(enc.buf.Bytes())
	return hex.EncodeToString(h.Sum(nil)), nil
}

const maxArgDepth = 32

// argEncoder writes a canonical, type-tagged encoding of argument values.
// Every value is preceded by its type, unexported struct fields are
// included, map entries are sorted by their encoding and pointers are
// identified by address. Two argument sets encode equally only if they hold
// values of the same types that compare equal.
type argEncoder struct {
	buf bytes.Buffer
}

func (e *argEncoder) encode(v reflect.Value, depth int) error {
	if depth > maxArgDepth {
		return fmt.Errorf("arguments nested deeper than %d levels", maxArgDepth)
	}
	if !v.IsValid() {
		e.writeString("nil")
		return nil
	}
	e.writeString(typeTag(v.Type()))

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			e.buf.WriteByte(1)
		} else {
			e.buf.WriteByte(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.writeUint(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.writeUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		e.writeUint(math.Float64bits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		e.writeUint(math.Float64bits(real(v.Complex())))
		e.writeUint(math.Float64bits(imag(v.Complex())))
	case reflect.String:
		e.writeString(v.String())
	case reflect.Pointer:
		e.writeUint(uint64(v.Pointer()))
	case reflect.Interface:
		if v.IsNil() {
			e.writeString("nil")
			return nil
		}
		return e.encode(v.Elem(), depth+1)
	case reflect.Slice:
		if v.IsNil() {
			e.writeString("nil")
			return nil
		}
		return e.encodeSeq(v, depth)
	case reflect.Array:
		return e.encodeSeq(v, depth)
	case reflect.Map:
		if v.IsNil() {
			e.writeString("nil")
			return nil
		}
		return e.encodeMap(v, depth)
	case reflect.Struct:
		t := v.Type()
		e.writeUint(uint64(v.NumField()))
		for i := 0; i < v.NumField(); i++ {
			e.writeString(t.Field(i).Name)
			if err := e.encode(v.Field(i), depth+1); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("arguments of kind %s have no stable encoding", v.Kind())
	}
	return nil
}

func (e *argEncoder) encodeSeq(v reflect.Value, depth int) error {
	e.writeUint(uint64(v.Len()))
	for i := 0; i < v.Len(); i++ {
		if err := e.encode(v.Index(i), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *argEncoder) encodeMap(v reflect.Value, depth int) error {
	type pair struct{ key, value []byte }
	pairs := make([]pair, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var k, val argEncoder
		if err := k.encode(iter.Key(), depth+1); err != nil {
			return err
		}
		if err := val.encode(iter.Value(), depth+1); err != nil {
			return err
		}
		pairs = append(pairs, pair{k.buf.Bytes(), val.buf.Bytes()})
	}
	sort.Slice(pairs, func(i, j int) bool { return bytes.Compare(pairs[i].key, pairs[j].key) < 0 })

	e.writeUint(uint64(len(pairs)))
	for _, p := range pairs {
		e.buf.Write(p.key)
		e.buf.Write(p.value)
	}
	return nil
}

func (e *argEncoder) writeUint(n uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	e.buf.Write(b[:])
}

func (e *argEncoder) writeString(s string) {
	e.writeUint(uint64(len(s)))
	e.buf.WriteString(s)
}

// typeTag names t unambiguously: named types carry their package path.
func typeTag(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeTag(t.Elem())
	case reflect.Slice:
		return "[]" + typeTag(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + typeTag(t.Elem())
	case reflect.Map:
		return "map[" + typeTag(t.Key()) + "]" + typeTag(t.Elem())
	}
	return t.String()
}
