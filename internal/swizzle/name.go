package swizzle

import (
	"fmt"
	"go/token"

	"swizzle-generator/internal/diagnostic"
)

// ValidateMethodName reports why name cannot be used as a method name.
// Concatenated field names can form keywords ("i" + "f") which
// token.IsIdentifier rejects.
func ValidateMethodName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty accessor name", diagnostic.ErrInvalidName)
	case name == "_":
		return fmt.Errorf("%w: accessor name %q is the blank identifier", diagnostic.ErrInvalidName, name)
	case token.IsKeyword(name):
		return fmt.Errorf("%w: accessor name %q is a Go keyword", diagnostic.ErrInvalidName, name)
	case !token.IsIdentifier(name):
		return fmt.Errorf("%w: accessor name %q is not a valid Go identifier", diagnostic.ErrInvalidName, name)
	}

	return nil
}

// IsExportedName reports whether a generated accessor is visible outside its package.
func IsExportedName(name string) bool {
	return token.IsExported(name)
}
