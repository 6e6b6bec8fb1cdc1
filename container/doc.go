// Package container provides faber, a lazy-initialization service container.
//
// A Container stores named entries. An entry is either a plain property (any
// non-callable value, or a callable stored with Protect) or a factory (any
// other callable). Factories are invoked on first access and their results
// are cached per argument set, so the same name with equal arguments always
// yields the same object while different arguments yield distinct objects.
//
// # Registration
//
//	c := container.MustNew(container.WithID("app"))
//	c.Register("dsn", "postgres://localhost/app")
//	c.Register("db", func(c *container.Container, args container.Args) (any, error) {
//	    dsn, err := c.Prop("dsn")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return sql.Open("pgx", dsn.(string))
//	})
//
// Register never overwrites: registering an existing name is a no-op. Use
// Update to replace a value.
//
// # Resolution
//
//	db, err := container.Resolve[*sql.DB](c, "db", nil)
//	replica, err := c.Get("db", container.Args{"role": "replica"})
//
// Make bypasses the cache and always invokes the factory.
//
// # Freezing
//
// Freeze pins an entry or a cached object against Update and Remove. Freezing
// a factory name also freezes every object it has produced and every object
// it will produce until it is unfrozen. Removing a factory drops its cached
// objects except the frozen ones, which stay reachable by key.
//
// # Failures
//
// Every operation reports failures as *errors.AppError values tagged with a
// code (BAD_ID, UNKNOWN_ID, WRONG_KIND, FROZEN, NOT_FROZEN, BAD_VALUE,
// TYPE_MISMATCH). Chain offers a fluent form in which the first failure
// sticks and every later call is skipped.
package container
