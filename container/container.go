package container

import (
	stderrors "errors"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

// Args are the arguments passed to a factory. Two argument sets with equal
// content map to the same cached object.
type Args map[string]any

// List builds positional Args keyed by index ("0", "1", ...).
func List(values ...any) Args {
	args := make(Args, len(values))
	for i, v := range values {
		args[strconv.Itoa(i)] = v
	}
	return args
}

// Factory is the native factory signature. Any other func value stored in
// the container is invoked reflectively, see Register.
type Factory func(c *Container, args Args) (any, error)

// Hook is a lifecycle callback fired at construction and teardown.
type Hook func(c *Container)

// Filter transforms a value on its way out of Get or Prop. The stored value
// is never modified.
type Filter func(c *Container, id string, value any) any

// ObjectInfo describes a cached object for inspection.
type ObjectInfo struct {
	Key     string `json:"key"`
	Entry   string `json:"entry"`
	Type    string `json:"type"`
	NumArgs int    `json:"num_args"`
}

type entry struct {
	value any
}

type pending struct {
	done  chan struct{}
	value any
	err   error
}

// Container is a registry of properties and factories with an
// argument-sensitive object cache.
type Container struct {
	mu sync.Mutex

	id    string
	token string

	// name → stored value
	context map[string]*entry
	// names whose callables are plain values
	protected map[string]struct{}
	// names and object keys pinned against update/remove
	frozen map[string]struct{}
	// object key → resolved value
	objects     map[string]any
	objectsInfo map[string]ObjectInfo
	// name → key prefix
	prefixes map[string]string
	// object key → factory call in progress
	inflight map[string]*pending

	log         *logger.Logger
	observer    Observer
	onInit      []Hook
	onClose     []Hook
	getFilters  []Filter
	propFilters []Filter
}

// New creates a container. Without WithID a process-unique id is generated.
func New(opts ...Option) (*Container, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	id := o.id
	if id == "" {
		id = "faber_" + token[:13]
	}

	log := o.log
	if log == nil {
		log = logger.Get("container")
	}

	c := &Container{
		id:          id,
		token:       token,
		context:     make(map[string]*entry),
		protected:   make(map[string]struct{}),
		frozen:      make(map[string]struct{}),
		objects:     make(map[string]any),
		objectsInfo: make(map[string]ObjectInfo),
		prefixes:    make(map[string]string),
		inflight:    make(map[string]*pending),
		log:         log.WithFields(logger.Fields(logger.FieldContainerID, id)),
		observer:    o.observer,
		onInit:      o.onInit,
		onClose:     o.onClose,
		getFilters:  o.getFilters,
		propFilters: o.propFilters,
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}

	if len(o.things) > 0 {
		if err := c.Load(o.things); err != nil {
			return nil, err
		}
	}

	for _, h := range c.onInit {
		h(c)
	}
	c.log.Debug("container initialized", logger.Fields("entries", len(c.context)))
	return c, nil
}

// MustNew is New that panics on failure.
func MustNew(opts ...Option) *Container {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// ID returns the container id. It never changes after construction.
func (c *Container) ID() string { return c.id }

// Token returns the opaque per-instance token embedded in every object key.
func (c *Container) Token() string { return c.token }

// String implements fmt.Stringer.
func (c *Container) String() string { return "faber.Container " + c.id }

// Close fires the teardown hooks and closes every cached object that
// implements io.Closer. Close errors are joined; no ordering is applied.
func (c *Container) Close() error {
	c.mu.Lock()
	closers := make([]io.Closer, 0)
	for _, obj := range c.objects {
		if closer, ok := obj.(io.Closer); ok {
			closers = append(closers, closer)
		}
	}
	hooks := c.onClose
	c.mu.Unlock()

	for _, h := range hooks {
		h(c)
	}

	var errs []error
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.log.Debug("container closed", logger.Fields("closed_objects", len(closers)))
	return stderrors.Join(errs...)
}

func validateID(id string) error {
	if id == "" {
		return errors.BadID(id)
	}
	return nil
}
