// Package registerpatron implements the Register Patron use case.
//
// Registering an instance twice returns its existing id without journaling anything.
package registerpatron
