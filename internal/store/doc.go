// Package store provides the thread-safe in-memory stores that hold the
// assistant's mutable shared state: the background task registry and the
// conversation session store. Both stores guard all mutation with an
// exclusive lock, never perform I/O while holding it, and hand out defensive
// copies so callers cannot mutate internal state from outside the lock.
package store
