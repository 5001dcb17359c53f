// Package types implements the Jmm Type value (spec.md §3) and the
// assignability relation TypeEngine needs (spec.md §4.2).
package types

import "fmt"

// Well-known primitive and synthetic type names.
const (
	Int     = "int"
	Boolean = "boolean"
	Void    = "void"
	Any     = "any" // synthetic top type for unresolved/imported names
	String  = "String"
)

// Type is (name, isArray) per spec.md §3. void never combines with
// isArray — constructors below enforce that invariant at the call site;
// a Type built any other way (e.g. a zero value) is not a valid Jmm type
// and callers should not construct Type literals directly.
type Type struct {
	Name    string
	IsArray bool
}

// IntType is the Jmm "int".
func IntType() Type { return Type{Name: Int} }

// BoolType is the Jmm "boolean".
func BoolType() Type { return Type{Name: Boolean} }

// VoidType is the Jmm "void"; never array.
func VoidType() Type { return Type{Name: Void} }

// AnyType is the synthetic top type used for unresolved identifiers.
func AnyType() Type { return Type{Name: Any} }

// StringType is the Jmm "String".
func StringType() Type { return Type{Name: String} }

// IntArrayType is "int[]", the only array element type Jmm's grammar
// produces (array literals, new int[n], varargs reification).
func IntArrayType() Type { return Type{Name: Int, IsArray: true} }

// ClassType names a user class (or imported class) by name.
func ClassType(name string) Type { return Type{Name: name} }

// IsVoid reports whether t is the void type.
func (t Type) IsVoid() bool { return t.Name == Void }

// IsAny reports whether t is the synthetic any type.
func (t Type) IsAny() bool { return t.Name == Any }

// IsPrimitive reports whether t is int or boolean (scalar, non-array).
func (t Type) IsPrimitive() bool {
	return !t.IsArray && (t.Name == Int || t.Name == Boolean)
}

// IsReference reports whether t is a reference type at the JVM level:
// an array, a class (including String and user/imported classes), but
// not int/boolean/void.
func (t Type) IsReference() bool {
	return t.IsArray || (t.Name != Int && t.Name != Boolean && t.Name != Void && t.Name != Any)
}

// Equal reports structural equality.
func (t Type) Equal(o Type) bool {
	return t.Name == o.Name && t.IsArray == o.IsArray
}

// String renders the type the way Jmm source would spell it.
func (t Type) String() string {
	if t.IsArray {
		return fmt.Sprintf("%s[]", t.Name)
	}
	return t.Name
}
