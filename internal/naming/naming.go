// Package naming holds the string conventions used when resource metadata
// becomes GraphQL names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// ShortName returns the last segment of a class identity. Namespaces may be
// separated by backslashes, dots or slashes.
func ShortName(class string) string {
	if i := strings.LastIndexAny(class, `\./`); i >= 0 {
		return class[i+1:]
	}
	return class
}

// LcFirst lowercases the first rune of s.
func LcFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// UcFirst uppercases the first rune of s.
func UcFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// Pluralize returns the English plural of a field name.
func Pluralize(s string) string {
	return inflection.Plural(s)
}

// NameConverter maps a declared property name to the exposed field name.
type NameConverter interface {
	Normalize(property, class string) string
}

// NameConverterFunc adapts a function to NameConverter.
type NameConverterFunc func(property, class string) string

func (f NameConverterFunc) Normalize(property, class string) string { return f(property, class) }

// Identity exposes property names unchanged.
var Identity NameConverter = NameConverterFunc(func(property, _ string) string { return property })

// SnakeCase exposes property names in snake_case.
var SnakeCase NameConverter = NameConverterFunc(func(property, _ string) string { return strcase.ToSnake(property) })

// CamelCase exposes property names in lowerCamelCase.
var CamelCase NameConverter = NameConverterFunc(func(property, _ string) string { return strcase.ToLowerCamel(property) })

// ConverterByName resolves a configured converter name. Unknown names yield
// false.
func ConverterByName(name string) (NameConverter, bool) {
	switch name {
	case "", "identity":
		return Identity, true
	case "snake_case":
		return SnakeCase, true
	case "camel_case":
		return CamelCase, true
	}
	return nil, false
}
