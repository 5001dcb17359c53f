package types

// ClassHierarchy is the minimal view of a SymbolTable that Assignable
// needs: the program's own class/superclass pair and its import list.
// Declared as an interface here (rather than importing symtable
// directly) to avoid a dependency cycle — internal/symtable also needs
// to reason about types.Type values.
type ClassHierarchy interface {
	ClassName() string
	SuperClassName() (string, bool)
	IsImported(name string) bool
}

// Assignable implements spec.md §4.2's assignable(src, dst, ST):
// true iff names are equal and arrays match; or either is any; or src
// is the program's declared class and dst is its declared superclass;
// or both names appear in imports (both treated as opaque external
// types, assignable in either direction).
func Assignable(src, dst Type, st ClassHierarchy) bool {
	if src.Name == dst.Name && src.IsArray == dst.IsArray {
		return true
	}
	if src.IsAny() || dst.IsAny() {
		return true
	}
	if !src.IsArray && !dst.IsArray {
		if st != nil {
			if src.Name == st.ClassName() {
				if super, ok := st.SuperClassName(); ok && super == dst.Name {
					return true
				}
			}
			if st.IsImported(src.Name) && st.IsImported(dst.Name) {
				return true
			}
		}
	}
	return false
}
