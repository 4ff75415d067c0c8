// Package plan binds normalized swizzle declarations to analyzed Go types and
// produces the ResolvedPlan consumed by code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load YAML, parse expressions and collect //swizzle:gen directives → declarations
//  3. For each declaration:
//     - Resolve the source and target structs
//     - Bind every destination field and candidate, checking assignability
//     - Expand the candidate product and check names against the receiver
//  4. Emit diagnostics (unknown fields with suggestions, mismatches, collisions, large expansions)
package plan
