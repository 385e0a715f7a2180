/*
Package cache implements the local durable cache of the feedback store.

The local cache holds the complete feedback collection as one serialized value
under the fixed key StorageKey ("dashboard-prototyper-feedback"). Every write
replaces the whole value. The cache is synchronous and always available: a
missing value, an unreachable backend or a value that can not be decoded make
Load return an empty collection instead of an error.

# Backends

The storage itself is pluggable via IBackend:

  - file:   one file per key in a data directory, replaced atomically via rename
  - memory: process local map, used by tests and for ephemeral sessions
  - redis:  one redis string per key (github.com/redis/go-redis/v9)

The encoding is selected with a serializer.IEntrySerializer (json or gob).

# Usage

	backend, err := cache.NewFileBackend("./data")
	if err != nil { ... }
	c := cache.NewLocalCache(backend, serializer.NewJSONSerializer())
	entries := c.Load()
	err = c.Save(append(entries, e))

There is no locking across processes. Two processes sharing the same backend
can overwrite each other's writes.
*/
package cache
