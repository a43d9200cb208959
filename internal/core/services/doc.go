// Package services implements the driving port interfaces.
// Services contain the core notebook logic and orchestrate
// calls to driven ports (adapters).
//
// Every service call is self-contained: notebooks are loaded from
// storage, changed at most once and saved back. No service keeps
// a notebook in memory between calls.
//
// Services are pure Go with no CGO or external dependencies.
package services
