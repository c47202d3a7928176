package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"
)

// Render produces SDL for every registered type of the Schema.
// Deterministic ordering: types, fields, arguments and enum values are
// sorted lexicographically.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	all := s.registry.All()
	for _, name := range s.registry.SortedNames() {
		switch typ := all[name].(type) {
		case *graphql.Scalar:
			if _, ok := standardScalars[name]; ok {
				continue
			}
			renderScalar(&b, typ)
		case *graphql.Enum:
			renderEnum(&b, typ)
		case *graphql.InputObject:
			renderInputObject(&b, typ)
		case *graphql.Object:
			renderObject(&b, typ)
		case *graphql.Interface:
			renderInterface(&b, typ)
		case *graphql.Union:
			renderUnion(&b, typ)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// ----- render helpers -----

func renderDescription(b *strings.Builder, indent, desc string) {
	if desc == "" {
		return
	}
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
	for _, line := range strings.Split(strings.ReplaceAll(desc, `"""`, `\"""`), "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
}

func renderDeprecated(b *strings.Builder, reason string) {
	if reason == "" {
		return
	}
	b.WriteString(" @deprecated(reason: ")
	b.WriteString(quoteString(reason))
	b.WriteString(")")
}

func renderScalar(b *strings.Builder, typ *graphql.Scalar) {
	renderDescription(b, "", typ.Description())
	b.WriteString("scalar ")
	b.WriteString(typ.Name())
	b.WriteString("\n\n")
}

func renderEnum(b *strings.Builder, typ *graphql.Enum) {
	renderDescription(b, "", typ.Description())
	b.WriteString("enum ")
	b.WriteString(typ.Name())
	b.WriteString(" {\n")
	values := append([]*graphql.EnumValueDefinition(nil), typ.Values()...)
	sort.Slice(values, func(i, j int) bool { return values[i].Name < values[j].Name })
	for _, val := range values {
		renderDescription(b, "  ", val.Description)
		b.WriteString("  ")
		b.WriteString(val.Name)
		renderDeprecated(b, val.DeprecationReason)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderInputObject(b *strings.Builder, typ *graphql.InputObject) {
	renderDescription(b, "", typ.Description())
	b.WriteString("input ")
	b.WriteString(typ.Name())
	b.WriteString(" {\n")
	fields := typ.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		field := fields[name]
		renderDescription(b, "  ", field.Description())
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(renderTypeRef(field.Type))
		if field.DefaultValue != nil {
			b.WriteString(" = ")
			b.WriteString(renderValue(field.DefaultValue))
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderObject(b *strings.Builder, typ *graphql.Object) {
	renderDescription(b, "", typ.Description())
	b.WriteString("type ")
	b.WriteString(typ.Name())
	if ifaces := typ.Interfaces(); len(ifaces) > 0 {
		b.WriteString(" implements ")
		for i, iface := range ifaces {
			if i > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(iface.Name())
		}
	}
	renderFields(b, typ.Fields())
}

func renderInterface(b *strings.Builder, typ *graphql.Interface) {
	renderDescription(b, "", typ.Description())
	b.WriteString("interface ")
	b.WriteString(typ.Name())
	renderFields(b, typ.Fields())
}

func renderUnion(b *strings.Builder, typ *graphql.Union) {
	renderDescription(b, "", typ.Description())
	b.WriteString("union ")
	b.WriteString(typ.Name())
	b.WriteString(" = ")
	for i, possibleType := range typ.Types() {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(possibleType.Name())
	}
	b.WriteString("\n\n")
}

func renderFields(b *strings.Builder, fields graphql.FieldDefinitionMap) {
	b.WriteString(" {\n")
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		renderField(b, name, fields[name])
	}
	b.WriteString("}\n\n")
}

func renderField(b *strings.Builder, name string, field *graphql.FieldDefinition) {
	renderDescription(b, "  ", field.Description)
	b.WriteString("  ")
	b.WriteString(name)
	if len(field.Args) > 0 {
		args := append([]*graphql.Argument(nil), field.Args...)
		sort.Slice(args, func(i, j int) bool { return args[i].Name() < args[j].Name() })
		b.WriteString("(")
		for i, arg := range args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name())
			b.WriteString(": ")
			b.WriteString(renderTypeRef(arg.Type))
			if arg.DefaultValue != nil {
				b.WriteString(" = ")
				b.WriteString(renderValue(arg.DefaultValue))
			}
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(renderTypeRef(field.Type))
	renderDeprecated(b, field.DeprecationReason)
	b.WriteString("\n")
}

func renderTypeRef(t graphql.Type) string {
	switch t := t.(type) {
	case nil:
		return ""
	case *graphql.NonNull:
		return renderTypeRef(t.OfType) + "!"
	case *graphql.List:
		return "[" + renderTypeRef(t.OfType) + "]"
	default:
		return t.Name()
	}
}

// quoteString renders s as a GraphQL string value. Only quotes, backslashes
// and control characters are escaped.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// renderValue renders a GraphQL value (for default values)
func renderValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		return quoteString(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, renderValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(v))
		for _, k := range keys {
			parts = append(parts, k+": "+renderValue(v[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}
