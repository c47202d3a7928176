package metadata

import (
	"fmt"
	"strings"
)

// Builtin is the primitive kind of an introspected property type.
type Builtin string

const (
	BuiltinBool     Builtin = "bool"
	BuiltinInt      Builtin = "int"
	BuiltinFloat    Builtin = "float"
	BuiltinString   Builtin = "string"
	BuiltinArray    Builtin = "array"
	BuiltinIterable Builtin = "iterable"
	BuiltinObject   Builtin = "object"
	BuiltinNull     Builtin = "null"
	BuiltinCallable Builtin = "callable"
	BuiltinResource Builtin = "resource"
)

var builtins = map[string]Builtin{
	"bool":     BuiltinBool,
	"boolean":  BuiltinBool,
	"int":      BuiltinInt,
	"integer":  BuiltinInt,
	"float":    BuiltinFloat,
	"string":   BuiltinString,
	"array":    BuiltinArray,
	"iterable": BuiltinIterable,
	"object":   BuiltinObject,
	"null":     BuiltinNull,
	"callable": BuiltinCallable,
	"resource": BuiltinResource,
}

// LookupBuiltin reports whether name is a builtin type name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[strings.ToLower(name)]
	return b, ok
}

// Type is the introspected type of a property or filter value.
type Type struct {
	Builtin    Builtin
	Nullable   bool
	Class      string
	Collection bool
	Member     *Type
}

// Scalar returns a non-collection type of the given builtin.
func Scalar(b Builtin, nullable bool) *Type {
	return &Type{Builtin: b, Nullable: nullable}
}

// Object returns an object type of class.
func Object(class string, nullable bool) *Type {
	return &Type{Builtin: BuiltinObject, Nullable: nullable, Class: class}
}

// CollectionOf returns an array type whose members are member.
func CollectionOf(member *Type, nullable bool) *Type {
	return &Type{Builtin: BuiltinArray, Nullable: nullable, Collection: true, Member: member}
}

// MemberClass returns the class of the collection member, or the class of t
// itself when t is not a collection.
func (t *Type) MemberClass() string {
	if t == nil {
		return ""
	}
	if t.Collection && t.Member != nil {
		return t.Member.Class
	}
	return t.Class
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var s string
	switch {
	case t.Collection && t.Member != nil:
		s = t.Member.String() + "[]"
	case t.Class != "":
		s = t.Class
	default:
		s = string(t.Builtin)
	}
	if t.Nullable {
		return "?" + s
	}
	return s
}

// ParseTypes parses the declaration shorthand used in metadata files.
//
//	string        non-null string
//	?int          nullable int
//	Book          object of class Book
//	Book[]        array of Book
//	?Book[]       nullable array of Book
//	int|string    union, first convertible member wins
func ParseTypes(decl string) ([]*Type, error) {
	decl = strings.TrimSpace(decl)
	if decl == "" {
		return nil, fmt.Errorf("empty type declaration")
	}
	parts := strings.Split(decl, "|")
	out := make([]*Type, 0, len(parts))
	for _, p := range parts {
		t, err := parseType(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid type declaration %q: %w", decl, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseType(s string) (*Type, error) {
	nullable := false
	if strings.HasPrefix(s, "?") {
		nullable = true
		s = s[1:]
	}
	if s == "" {
		return nil, fmt.Errorf("missing type name")
	}
	if strings.HasSuffix(s, "[]") {
		member, err := parseType(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return nil, err
		}
		return CollectionOf(member, nullable), nil
	}
	if strings.ContainsAny(s, "?[] \t") {
		return nil, fmt.Errorf("unexpected character in %q", s)
	}
	if b, ok := LookupBuiltin(s); ok {
		return Scalar(b, nullable), nil
	}
	return Object(s, nullable), nil
}
