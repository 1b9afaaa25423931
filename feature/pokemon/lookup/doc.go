// Package lookup resolves pokemon that are not in the local dataset.
//
// The Lookup interface is what the ingestion flow depends on; Client is the
// PokeAPI implementation. It issues GET {base_url}/pokemon/{name} through
// Fiber's HTTP client with the configured timeout, maps 404 to ErrNotFound,
// orders types by slot (keeping at most two) and never retries.
//
// Identical lookups in flight at the same time are coalesced into one request.
// Results are not cached.
package lookup
