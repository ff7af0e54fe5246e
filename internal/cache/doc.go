// Package cache is a normalized client-side query cache with tag-based
// invalidation.
//
// Reads go through Query or Subscribe with a Request: a Key (operation name
// plus argument) and a Fetch function. Each stored result is labelled with
// the Tags its Request provides, and an inverted index maps every tag to the
// keys labelled with it. Writes go through Mutate: after the mutation
// succeeds, every entry under the tags it invalidates is marked stale.
//
// # Entry lifecycle
//
//	Idle -> Fetching -> Valid -> Invalidated -> Fetching -> Valid -> ...
//	                 \-> Error (treated as invalid, retried on next read)
//
// # Guarantees
//
//   - Concurrent identical reads share one fetch (singleflight keyed by
//     entry key and generation).
//   - A read that starts after a mutation returns never joins a fetch that
//     started before it: invalidation bumps the entry generation.
//   - A fetch that overlaps an invalidation of any tag it provides is not
//     marked Valid.
//   - Entries with subscribers are re-fetched before Mutate returns; entries
//     without subscribers are only marked stale and re-fetched lazily.
//   - A failed mutation invalidates nothing.
//
// Listeners run synchronously on the goroutine that changed the entry and
// must not call Mutate or Invalidate themselves.
package cache
