// Package swizzle holds the canonical swizzle model and the combination
// generator.
//
// A Declaration is one of three surface forms (self-swizzle, single mapping,
// combination block). Normalize turns any of them into a Spec: an ordered
// list of destination fields, each with an ordered, non-empty list of
// candidate source fields.
//
// Enumerate walks the Cartesian product of the candidate lists like an
// odometer: the first destination field varies slowest and the last one
// fastest. Every point of the product is an Accessor whose name is the
// concatenation of the chosen source field names, so for a self-swizzle of
// [X, Y] the sequence is XX, XY, YX, YY.
//
// The package is pure: it performs no I/O and knows nothing about real Go
// types. Binding a Spec to struct declarations happens in package plan.
package swizzle
