// Package domain defines the core notebook entities for nbmcp.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Notebook: the ordered cell sequence plus opaque metadata
//   - Cell: a code, markdown or raw cell addressed by position
//   - Output: a closed set of output variants owned by a code cell
//   - MimeBundle: the MIME-keyed payloads of rich outputs
//
// Cell mutations live here as methods on Notebook so that every
// invariant is enforced in one place, whichever adapter drives them.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
