// Package memoryengine provides an in-process journal engine.
//
// Entries live in a slice guarded by a mutex, so the journal is lost when the process exits.
// Filters are evaluated against the top-level string fields of each payload, which are decoded
// once when an entry is appended.
//
// It is the default engine of the simulator and the journal used by the handler tests.
package memoryengine
