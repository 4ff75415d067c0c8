// Package gen provides deterministic Go code generation for swizzle accessors.
//
// Generation uses text/template + go/format. Every source package gets one
// file (swizzle_gen.go by default) holding one value-receiver method per
// accessor:
//
//	// YX returns a new Vec2 with the values swizzled: Y, X.
//	func (v Vec2) YX() Vec2 {
//		return Vec2{
//			X: v.Y,
//			Y: v.X,
//		}
//	}
//
// Convertible field types become explicit conversions (X: float64(v.X)).
// BuildManifest and WriteManifest describe a run as JSON.
package gen
