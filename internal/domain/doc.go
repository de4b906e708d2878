// Package domain contains the core value types and errors for fairframe.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (flags, files, logging) and holds only the values
// that flow between the numerical components and their callers.
//
// # Values
//
//   - [Params]: a port count and a load bound, validated once per invocation
//   - [Solution]: the accepted delta with its batch size and constraint value
//   - [Evaluation]: the model evaluated at a caller-supplied delta
//
// All values are immutable after construction. A [Solution] is never updated
// in place; a new delta always produces a new record.
package domain
