/*
Package dataloader implements a request-scoped batching and caching
loader, which collapses the many small lookups made while resolving a
GraphQL document into a bounded number of bulk queries.

A Loader wraps a batch function. The batch function receives a slice
of keys and must return a slice of values of the same length, where
the value at index i belongs to keys[i]. A key with no matching row
maps to the zero value of V (a nil pointer or a nil slice); absence is
not an error.

Calling Load does not run any query. It records the key and returns a
thunk:
 thunk := users.Load(ctx, id)
 // ... more Load calls, for this or other keys ...
 user, err := thunk()
The first thunk that needs a pending key calls Flush, which sends every
pending key to the batch function in one call. All other thunks for
keys in that batch then return immediately. Flush may also be called
directly, which makes the batching boundary explicit and independent of
how the caller schedules work.

Results are cached for the lifetime of the Loader. Prime seeds the
cache with a value obtained elsewhere, and Clear evicts a key so the
next Load fetches it again. When the batch function fails, every key in
that batch receives the error and is evicted, so a later Load retries.

A Loader is meant to live for one request and is not safe for
concurrent use.
*/
package dataloader
