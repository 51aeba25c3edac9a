// Package store provides the key-value persistence substrate for the event
// catalog: string keys, opaque byte values, and per-key expiry.
//
// Two implementations exist. Memory is a thread-safe map with lazy expiry,
// suitable for tests and single-shot CLI runs. Pebble persists values to a
// local PebbleDB with the expiry recorded in an envelope alongside the
// payload and enforced on read.
package store
