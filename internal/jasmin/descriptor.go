package jasmin

import "strings"

// ImportMap resolves a class's simple name to its slash-qualified form,
// built once from the program's import list (spec.md §4.8).
type ImportMap map[string]string

// NewImportMap builds the map from dotted import names, e.g.
// "java.util.List" maps both "List" and "java.util.List" to
// "java/util/List".
func NewImportMap(imports []string) ImportMap {
	m := make(ImportMap, len(imports))
	for _, imp := range imports {
		slash := strings.ReplaceAll(imp, ".", "/")
		m[imp] = slash
		if i := strings.LastIndex(imp, "."); i >= 0 {
			m[imp[i+1:]] = slash
		} else {
			m[imp] = slash
		}
	}
	return m
}

// Qualify resolves name (a bare class name as it appears in OLLIR) to its
// slash-qualified form, falling back to name itself for the program's own
// class or any name with no recorded import.
func (m ImportMap) Qualify(name string) string {
	if q, ok := m[name]; ok {
		return q
	}
	return name
}

// Descriptor renders an OLLIR type suffix ("i32", "bool", "V",
// "array.i32", "ClassName") as a JVM field/return descriptor
// (spec.md §4.8).
func Descriptor(suffix string, imports ImportMap) string {
	switch suffix {
	case "i32":
		return "I"
	case "bool":
		return "Z"
	case "V":
		return "V"
	case "String":
		return "Ljava/lang/String;"
	}
	if rest, ok := strings.CutPrefix(suffix, "array."); ok {
		return "[" + Descriptor(rest, imports)
	}
	return "L" + imports.Qualify(suffix) + ";"
}

// IsReference reports whether suffix denotes a JVM reference type (array
// or object), as opposed to int/boolean/void.
func IsReference(suffix string) bool {
	return suffix != "i32" && suffix != "bool" && suffix != "V"
}

// MethodDescriptor builds "(argDescs)retDesc".
func MethodDescriptor(argTypes []string, retType string, imports ImportMap) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, t := range argTypes {
		b.WriteString(Descriptor(t, imports))
	}
	b.WriteByte(')')
	b.WriteString(Descriptor(retType, imports))
	return b.String()
}
