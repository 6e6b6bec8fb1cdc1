package container

import "time"

// Observer receives resolution events. Implementations must be safe for
// concurrent use; they are called outside the container lock.
type Observer interface {
	// CacheHit is called when Get finds a cached object.
	CacheHit(entry, key string)
	// CacheMiss is called when Get has to invoke a factory.
	CacheMiss(entry, key string)
	// FactoryInvoked is called after every factory call, cached or not.
	FactoryInvoked(entry string, started time.Time, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string, string)                                {}
func (nopObserver) CacheMiss(string, string)                               {}
func (nopObserver) FactoryInvoked(string, time.Time, time.Duration, error) {}
