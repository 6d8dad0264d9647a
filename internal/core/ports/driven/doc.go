// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). Core services depend on these
// abstractions; concrete implementations live under internal/adapters.
package driven
