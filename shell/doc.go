// Package shell is the imperative shell around the library core.
//
// It holds what the feature slices share: the command and query contracts, the mapping between
// domain events and journal entries, the retry loop for journal appends, the lock around a
// shared library.Library, and dependency-free observability helpers that the observable
// wrappers build on.
package shell
