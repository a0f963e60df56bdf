// Package config holds the runtime configuration of the library simulator and the
// PostgreSQL connection helpers shared by the simulator and the integration tests.
//
// Values resolve in this order: defaults, environment, command-line flags.
package config
