// Package archive persists a local history of posted broadcasts.
//
// The store is SQLite-backed and append-mostly: one row per successful run,
// read back by the history command. It is bookkeeping, not a job queue —
// nothing in the pipeline retries from it.
package archive
