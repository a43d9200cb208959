// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - NotebookStore: Notebook load and atomic save
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TableSummariser: Measures HTML tables. Without it, tables are shown as a generic marker.
//   - ConfigStore: Application configuration. Without it, defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
