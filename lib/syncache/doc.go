// Package syncache provides the time bounded cache of the remote feedback collection.
//
// The remote service is slow and rate limited, so the explicit pull path goes
// through Cache: within DefaultBound (10 seconds) of a successful fetch, reads
// are answered from memory. A failed fetch leaves the cache untouched and makes
// Read report "no fresh data" instead of an error. Any successful remote write
// should call Invalidate so the next read sees it.
//
// Counters fbstore_sync_cache_hits_total and fbstore_sync_cache_misses_total
// (VictoriaMetrics) track how often the remote is spared.
package syncache
