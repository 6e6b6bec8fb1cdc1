package container

import (
	stderrors "errors"
	"sort"
	"sync"

	"github.com/kbukum/faber/logger"
)

// Registry holds named containers. A container is created on first lookup
// of its id and lives until flushed.
type Registry struct {
	mu         sync.Mutex
	containers map[string]*Container
	opts       []Option
	log        *logger.Logger
}

// NewRegistry creates an empty registry. opts are applied to every
// container it creates, before the id.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		containers: make(map[string]*Container),
		opts:       opts,
		log:        logger.Get("registry"),
	}
}

// GetOrCreate returns the container registered under id, creating it if
// needed. Concurrent first lookups of the same id create one container.
func (r *Registry) GetOrCreate(id string) (*Container, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.containers[id]; ok {
		return c, nil
	}
	opts := append(append([]Option{}, r.opts...), WithID(id))
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	r.containers[id] = c
	r.log.Debug("container created", logger.Fields(logger.FieldContainerID, id))
	return c, nil
}

// Lookup returns the container registered under id without creating it.
func (r *Registry) Lookup(id string) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.containers[id]
	return c, ok
}

// IDs returns the ids of all registered containers, sorted.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.containers))
	for id := range r.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Flush closes and forgets the containers with the given ids, or every
// container when no id is given. Unknown ids are ignored.
func (r *Registry) Flush(ids ...string) error {
	r.mu.Lock()
	if len(ids) == 0 {
		ids = make([]string, 0, len(r.containers))
		for id := range r.containers {
			ids = append(ids, id)
		}
	}
	flushed := make([]*Container, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.containers[id]; ok {
			flushed = append(flushed, c)
			delete(r.containers, id)
		}
	}
	r.mu.Unlock()

	var errs []error
	for _, c := range flushed {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.log.Debug("containers flushed", logger.Fields("count", len(flushed)))
	return stderrors.Join(errs...)
}
