// Package diagnostic provides structured warnings and errors for the
// swizzle generator.
//
// Every error diagnostic carries a code that belongs to one of four
// families, each exposed as a sentinel error:
//   - ErrMalformedSpec: a declaration that cannot be normalized or does not
//     cover its destination type
//   - ErrUnknownField: a type or field name that does not exist
//   - ErrTypeMismatch: a source field that cannot be copied into its
//     destination field
//   - ErrNameCollision: a generated method name that is not a usable Go
//     identifier or clashes with another name on the receiver
//
// All diagnostics of a run are reported together through Diagnostics.Error.
package diagnostic
