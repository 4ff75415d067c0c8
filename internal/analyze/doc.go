// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs, their fields and the
// methods already declared on them.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/array/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - MethodInfo: describes a declared method and the file declaring it
package analyze
