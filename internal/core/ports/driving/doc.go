// Package driving defines the interfaces through which external actors
// call INTO the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement these interfaces, and driving adapters (CLI,
// TUI) depend on them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package, driven ports
package driving
