package schema

import (
	"errors"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/language"
	"github.com/hanpama/resourcegraph/internal/metadata"
)

// TypeConverter maps introspected types and type references to GraphQL
// types.
type TypeConverter interface {
	// ConvertType returns the GraphQL type of t, or nil when t has no
	// GraphQL counterpart. resourceClass is the class t refers to; rootClass
	// owns property.
	ConvertType(t *metadata.Type, input bool, rootOp *metadata.Operation, resourceClass, rootClass, property string, depth int) (graphql.Type, error)
	// ResolveType resolves a reference such as "[String!]!".
	ResolveType(ref string) (graphql.Type, error)
}

var dateTimeClasses = map[string]bool{
	"DateTimeInterface": true,
	"DateTime":          true,
	"DateTimeImmutable": true,
	"time.Time":         true,
}

var standardScalars = map[string]*graphql.Scalar{
	"String":  graphql.String,
	"Int":     graphql.Int,
	"Float":   graphql.Float,
	"Boolean": graphql.Boolean,
	"ID":      graphql.ID,
}

// Converter is the default TypeConverter.
type Converter struct {
	types    *TypeBuilder
	registry *Registry
	meta     metadata.Source
}

var _ TypeConverter = (*Converter)(nil)

// NewConverter creates a Converter building resource types with types.
func NewConverter(types *TypeBuilder, registry *Registry, meta metadata.Source) *Converter {
	return &Converter{types: types, registry: registry, meta: meta}
}

func (c *Converter) ConvertType(t *metadata.Type, input bool, rootOp *metadata.Operation, resourceClass, rootClass, property string, depth int) (graphql.Type, error) {
	if t == nil {
		return nil, nil
	}
	switch t.Builtin {
	case metadata.BuiltinBool:
		return graphql.Boolean, nil
	case metadata.BuiltinInt:
		return graphql.Int, nil
	case metadata.BuiltinFloat:
		return graphql.Float, nil
	case metadata.BuiltinString:
		return graphql.String, nil
	case metadata.BuiltinArray, metadata.BuiltinIterable:
		if member := t.Member; member != nil && member.Builtin == metadata.BuiltinObject && member.Class != "" {
			if _, ok := c.meta.Enum(member.Class); ok {
				return c.enumType(member.Class)
			}
			if c.meta.IsResourceClass(member.Class) {
				return c.resourceType(t, input, rootOp, rootClass, property, depth)
			}
		}
		if iterable, err := c.registry.Get(IterableName); err == nil {
			return iterable, nil
		}
		return nil, nil
	case metadata.BuiltinObject:
		if dateTimeClasses[strings.TrimPrefix(t.Class, `\`)] {
			return graphql.String, nil
		}
		if _, ok := c.meta.Enum(t.Class); ok {
			return c.enumType(t.Class)
		}
		return c.resourceType(t, input, rootOp, rootClass, property, depth)
	}
	return nil, nil
}

func (c *Converter) enumType(class string) (graphql.Type, error) {
	e, _ := c.meta.Enum(class)
	op := &metadata.Operation{Class: class, ShortName: e.ShortName, Description: e.Description}
	if c.meta.IsResourceClass(class) {
		res, err := c.meta.Resource(class)
		if err != nil {
			return nil, err
		}
		if len(res.Operations) > 0 {
			op = res.Operations[0]
		}
	}
	return c.types.EnumType(op)
}

func (c *Converter) resourceType(t *metadata.Type, input bool, rootOp *metadata.Operation, rootClass, property string, depth int) (graphql.Type, error) {
	class := t.MemberClass()
	if class == "" || !c.meta.IsResourceClass(class) {
		return nil, nil
	}
	res, err := c.meta.Resource(class)
	if err != nil {
		return nil, err
	}
	if res.ShortName == "Node" {
		return nil, errReservedNode(class)
	}
	op := rootOp
	switch {
	case input && depth > 0:
		op = nestedInputOperation(res)
	case depth > 0:
		if op = nestedOperation(res, rootOp, t.Collection); op == nil {
			return nil, nil
		}
	}
	if op == nil {
		return nil, nil
	}
	if input && property != "" {
		p, err := c.meta.Property(rootClass, property, metadata.OptionsFor(rootOp))
		var notFound *metadata.PropertyNotFoundError
		switch {
		case errors.As(err, &notFound):
		case err != nil:
			return nil, err
		case p.WritableLink:
			return graphql.String, nil
		}
	}
	return c.types.ResourceObjectType(res, op, input, false, depth), nil
}

// nestedOperation picks the operation a resource is exposed through when it
// is reached from another resource's field.
func nestedOperation(res *metadata.Resource, rootOp *metadata.Operation, collection bool) *metadata.Operation {
	if rootOp == nil {
		return nil
	}
	if rootOp.IsQuery() {
		first, second := metadata.OperationItemQuery, metadata.OperationCollectionQuery
		if collection {
			first, second = second, first
		}
		if op, ok := res.Operation(first); ok {
			return op
		}
		if op, ok := res.Operation(second); ok {
			return op
		}
		return nil
	}
	if _, ok := res.Operation(metadata.OperationItemQuery); !ok {
		return nil
	}
	if op, ok := res.Operation(rootOp.Name); ok {
		return op
	}
	op := rootOp.Clone()
	op.Class = res.Class
	op.ShortName = res.ShortName
	op.Description = ""
	op.Resolver = ""
	op.Args = nil
	op.ExtraArgs = nil
	op.Input = nil
	op.Output = nil
	return op
}

// nestedInputOperation picks the operation the shared nested input of res is
// built from. It depends on res alone, so every mutation embedding the input
// sees the same fields: create wins over update, and a resource exposing
// neither gets a bare create.
func nestedInputOperation(res *metadata.Resource) *metadata.Operation {
	for _, name := range []string{metadata.OperationCreate, metadata.OperationUpdate} {
		if op, ok := res.Operation(name); ok {
			op = op.Clone()
			op.Resolver = ""
			op.Args = nil
			op.ExtraArgs = nil
			if op.Input.Disabled() {
				op.Input = nil
			}
			return op
		}
	}
	return &metadata.Operation{
		Kind:      metadata.KindMutation,
		Name:      metadata.OperationCreate,
		Class:     res.Class,
		ShortName: res.ShortName,
	}
}

func (c *Converter) ResolveType(ref string) (graphql.Type, error) {
	typ, err := language.ParseTypeReference(ref)
	if err != nil {
		return nil, errInvalidTypeString(ref, err)
	}
	if typ.Elem != nil && typ.Elem.Elem != nil {
		return nil, errInvalidTypeString(ref, nil)
	}
	var base graphql.Type
	if s, ok := standardScalars[typ.Name()]; ok {
		base = s
	} else if base, err = c.registry.Get(typ.Name()); err != nil {
		return nil, errUnresolvedTypeString(ref)
	}
	return wrapType(typ, base), nil
}

func wrapType(ref *language.Type, base graphql.Type) graphql.Type {
	t := base
	if ref.Elem != nil {
		t = graphql.NewList(wrapType(ref.Elem, base))
	}
	if ref.NonNull {
		t = graphql.NewNonNull(t)
	}
	return t
}
