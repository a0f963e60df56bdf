// Package testdoubles provides spies for the dependency-free observability interfaces
// of the journal and the shell: LogSpy, MetricsCollectorSpy and TracingCollectorSpy.
//
// All spies are safe for concurrent use. Constructed with recordCalls=false they act as no-op fakes.
package testdoubles
