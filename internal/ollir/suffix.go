package ollir

import "github.com/marco-vb/jmmc/internal/types"

// Suffix renders t as the OLLIR type suffix, without descriptor dots
// prefixed (callers compose "name" + "." + Suffix(t)) — spec.md §3's
// ".i32", ".bool", ".V", ".array.<T>", ".<ClassName>" family.
func Suffix(t types.Type) string {
	if t.IsArray {
		return "array." + elemSuffix(t.Name)
	}
	return elemSuffix(t.Name)
}

func elemSuffix(name string) string {
	switch name {
	case types.Int:
		return "i32"
	case types.Boolean:
		return "bool"
	case types.Void:
		return "V"
	default:
		return name
	}
}
