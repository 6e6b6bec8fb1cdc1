package container

import "github.com/kbukum/faber/logger"

type options struct {
	id          string
	things      map[string]any
	log         *logger.Logger
	observer    Observer
	onInit      []Hook
	onClose     []Hook
	getFilters  []Filter
	propFilters []Filter
}

// Option configures a Container at construction.
type Option func(*options)

// WithID sets the container id. An empty id keeps the generated one.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithThings seeds the container with properties and factories, as Load does.
func WithThings(things map[string]any) Option {
	return func(o *options) { o.things = things }
}

// WithLogger sets the logger used for container diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver sets the observer notified of cache hits, misses and
// factory invocations.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// OnInit registers hooks fired once construction completes.
func OnInit(hooks ...Hook) Option {
	return func(o *options) { o.onInit = append(o.onInit, hooks...) }
}

// OnClose registers hooks fired by Close.
func OnClose(hooks ...Hook) Option {
	return func(o *options) { o.onClose = append(o.onClose, hooks...) }
}

// WithGetFilter registers filters applied to objects returned by Get.
func WithGetFilter(filters ...Filter) Option {
	return func(o *options) { o.getFilters = append(o.getFilters, filters...) }
}

// WithPropFilter registers filters applied to values returned by Prop.
func WithPropFilter(filters ...Filter) Option {
	return func(o *options) { o.propFilters = append(o.propFilters, filters...) }
}
