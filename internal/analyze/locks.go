package analyze

import (
	"go/types"
	"strings"
)

// LockPath reports the first value inside t that must not be copied, such as
// a sync.Mutex field or an atomic counter, as "field.path Type". It returns
// "" when copying t by value is safe. Any type whose pointer has a Lock()
// method counts as a lock, which also catches the noCopy markers in sync and
// sync/atomic.
func LockPath(t types.Type) string {
	path, lock := lockPath(t, map[types.Type]bool{})
	if lock == "" {
		return ""
	}

	if len(path) == 0 {
		return lock
	}

	return strings.Join(path, ".") + " " + lock
}

func lockPath(t types.Type, seen map[types.Type]bool) ([]string, string) {
	if t == nil || seen[t] {
		return nil, ""
	}

	seen[t] = true

	switch u := t.Underlying().(type) {
	case *types.Array:
		path, lock := lockPath(u.Elem(), seen)
		if lock == "" {
			return nil, ""
		}

		return append([]string{"[]"}, path...), lock

	case *types.Struct:
		if hasLockMethod(t) {
			return nil, types.TypeString(t, (*types.Package).Name)
		}

		for i := range u.NumFields() {
			f := u.Field(i)

			path, lock := lockPath(f.Type(), seen)
			if lock == "" {
				continue
			}

			if len(path) > 0 && path[0] == "[]" {
				path[0] = f.Name() + "[]"
				return path, lock
			}

			return append([]string{f.Name()}, path...), lock
		}
	}

	return nil, ""
}

func hasLockMethod(t types.Type) bool {
	if _, ok := t.Underlying().(*types.Interface); ok {
		return false
	}

	sel := types.NewMethodSet(types.NewPointer(t)).Lookup(nil, "Lock")
	if sel == nil {
		return false
	}

	sig, ok := sel.Type().(*types.Signature)

	return ok && sig.Params().Len() == 0 && sig.Results().Len() == 0
}
