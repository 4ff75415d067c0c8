// Package mapping provides the declaration inputs of the swizzle generator:
// the YAML mapping file, the compact expression syntax and the
// //swizzle:gen source directives. All three produce Entry values, which
// convert into swizzle.Declaration.
//
// # Schema Overview
//
//	version: "1"
//	options:
//	  output: swizzle_gen.go     # generated file name per package
//	  allow_convert: false       # emit T(v.F) for convertible field types
//	  warn_threshold: 1024       # warn above this many accessors per entry
//	  max_accessors: 0           # hard cap per entry, 0 = unlimited
//	swizzles:
//	  # Self-swizzle: source defaults to target, every field draws from all.
//	  - target: Vec2
//	    self: [X, Y]
//	  # Single explicit mapping: exactly one accessor (YXY).
//	  - source: Foo
//	    target: Bar
//	    single: {A: Y, B: X, C: Y}
//	  # Combination block: explicit candidate list per destination field.
//	  - source: Rgba
//	    target: Rgb
//	    combine:
//	      R: [R, G, B, A]
//	      G: [R, G, B, A]
//	      B: [R, G, B, A]
//	    prefix: ""
//	    suffix: ""
//
// Key order inside single and combine is significant: it is the
// destination field order and therefore the order of characters in every
// generated name.
//
// # Expression Syntax
//
//	Vec2 { X, Y }                        self-swizzle
//	Point2 { X: Y, Y: X }                single mapping
//	Rgb { R: (R, G, B, A), G: (G), B: (B, A) }   combination block
//
// # Directives
//
// A struct type may carry its declarations in its doc comment; the
// annotated type is the source:
//
//	//swizzle:gen Vec2 { X, Y }
//	//swizzle:gen Scalar { X: (X, Y) } prefix=To
//	type Vec2 struct{ X, Y float64 }
package mapping
