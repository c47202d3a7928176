package schema

import (
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/naming"
	"github.com/hanpama/resourcegraph/internal/pagination"
	"github.com/hanpama/resourcegraph/internal/resolver"
)

// NodeName names the Relay node interface.
const NodeName = "Node"

// TypeBuilder constructs the named types derived from resources. Every type
// is registered before its fields are evaluated; field maps are thunks that
// run when graphql-go first asks for them.
//
// Thunks cannot return errors, so the first failure inside one is kept and
// reported by Err.
type TypeBuilder struct {
	registry *Registry
	meta     metadata.Source
	policy   pagination.Policy
	fields   *FieldsBuilder
	err      error
}

// NewTypeBuilder creates a TypeBuilder. SetFieldsBuilder must be called
// before any resource type is built.
func NewTypeBuilder(registry *Registry, meta metadata.Source, policy pagination.Policy) *TypeBuilder {
	return &TypeBuilder{registry: registry, meta: meta, policy: policy}
}

// SetFieldsBuilder attaches the FieldsBuilder field thunks delegate to.
func (b *TypeBuilder) SetFieldsBuilder(f *FieldsBuilder) { b.fields = f }

// Err returns the first error raised while evaluating a field thunk.
func (b *TypeBuilder) Err() error { return b.err }

func (b *TypeBuilder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// IsCollection reports whether t is a collection of objects of a known class.
func IsCollection(t *metadata.Type) bool {
	return t != nil && t.Collection && t.Member != nil &&
		t.Member.Builtin == metadata.BuiltinObject && t.Member.Class != ""
}

// NodeInterface returns the Relay node interface.
func (b *TypeBuilder) NodeInterface() *graphql.Interface {
	if t, err := b.registry.Get(NodeName); err == nil {
		if iface, ok := t.(*graphql.Interface); ok {
			return iface
		}
	}
	iface := graphql.NewInterface(graphql.InterfaceConfig{
		Name:        NodeName,
		Description: "A node, according to the Relay specification.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Name:        "id",
				Type:        graphql.NewNonNull(graphql.ID),
				Description: "The id of this node.",
			},
		},
		ResolveType: b.resolveNode,
	})
	b.registry.Set(NodeName, iface)
	return iface
}

func (b *TypeBuilder) resolveNode(p graphql.ResolveTypeParams) *graphql.Object {
	class, ok := resolver.ClassOf(p.Value)
	if !ok {
		return nil
	}
	res, err := b.meta.Resource(class)
	if err != nil {
		return nil
	}
	t, err := b.registry.Get(res.ShortName)
	if err != nil {
		return nil
	}
	obj, _ := t.(*graphql.Object)
	return obj
}

// ResourceTypeName computes the name of the type res is exposed as through
// op.
func ResourceTypeName(res *metadata.Resource, op *metadata.Operation, input, wrapped bool, depth int) string {
	short := op.ShortName
	switch op.Name {
	case metadata.OperationItemQuery:
		if other, ok := res.Operation(metadata.OperationCollectionQuery); ok && !op.NormalizationContext.Equal(other.NormalizationContext) {
			short += "Item"
		}
	case metadata.OperationCollectionQuery:
		if other, ok := res.Operation(metadata.OperationItemQuery); ok && !op.NormalizationContext.Equal(other.NormalizationContext) {
			short += "Collection"
		}
	}

	name := short
	switch {
	case op.IsMutation():
		name = op.Name + naming.UcFirst(short)
	case op.IsSubscription():
		name = strings.TrimSuffix(op.Name, "_subscription") + naming.UcFirst(short) + "Subscription"
	}
	switch {
	case input && depth > 0:
		name = short + "NestedInput"
	case input:
		name += "Input"
	case op.IsMutation() || op.IsSubscription():
		if depth > 0 {
			name += "Nested"
		}
		name += "Payload"
	}
	if wrapped && (op.IsMutation() || op.IsSubscription()) {
		name += "Data"
	}
	return name
}

// ResourceObjectType returns the type res is exposed as through op. Input
// types are returned non-null.
func (b *TypeBuilder) ResourceObjectType(res *metadata.Resource, op *metadata.Operation, input, wrapped bool, depth int) graphql.Type {
	name := ResourceTypeName(res, op, input, wrapped, depth)
	if t, err := b.registry.Get(name); err == nil {
		if input {
			return graphql.NewNonNull(t)
		}
		return t
	}

	wrapData := !wrapped && (op.IsMutation() || op.IsSubscription()) && !input && depth < 1
	thunk := func() graphql.Fields {
		var (
			fields graphql.Fields
			err    error
		)
		if wrapData {
			fields, err = b.payloadFields(res, op, depth)
		} else {
			fields, err = b.objectFields(res, op, input, depth)
		}
		if err != nil {
			b.fail(err)
			return graphql.Fields{}
		}
		return fields
	}

	if input {
		t := graphql.NewInputObject(graphql.InputObjectConfig{
			Name:        name,
			Description: res.Description,
			Fields: graphql.InputObjectConfigFieldMapThunk(func() graphql.InputObjectConfigFieldMap {
				return inputFields(thunk())
			}),
		})
		b.registry.Set(name, t)
		return graphql.NewNonNull(t)
	}

	var interfaces []*graphql.Interface
	if !wrapData && !op.Output.Disabled() {
		interfaces = []*graphql.Interface{b.NodeInterface()}
	}
	t := graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: res.Description,
		Interfaces:  interfaces,
		Fields:      graphql.FieldsThunk(thunk),
	})
	b.registry.Set(name, t)
	return t
}

func (b *TypeBuilder) objectFields(res *metadata.Resource, op *metadata.Operation, input bool, depth int) (graphql.Fields, error) {
	io := op.Output
	if input {
		io = op.Input
	}
	if input && op.IsMutation() && depth == 0 {
		if op.Args != nil {
			args, err := b.fields.ResolveResourceArgs(op.Args, op)
			if err != nil {
				return nil, err
			}
			fields := argumentFields(args)
			fields["clientMutationId"] = &graphql.Field{Name: "clientMutationId", Type: graphql.String}
			return fields, nil
		}
		if len(op.ExtraArgs) > 0 {
			fields, err := b.fields.GetResourceObjectTypeFields(op.Class, op, input, depth, io)
			if err != nil {
				return nil, err
			}
			extra, err := b.fields.ResolveResourceArgs(op.ExtraArgs, op)
			if err != nil {
				return nil, err
			}
			for name, f := range argumentFields(extra) {
				if _, ok := fields[name]; !ok {
					fields[name] = f
				}
			}
			return fields, nil
		}
	}
	return b.fields.GetResourceObjectTypeFields(op.Class, op, input, depth, io)
}

// payloadFields builds the mutation and subscription payload. The item is
// exposed through the item query type unless op serializes it differently,
// in which case a dedicated Data type is used.
func (b *TypeBuilder) payloadFields(res *metadata.Resource, op *metadata.Operation, depth int) (graphql.Fields, error) {
	var queryContext *metadata.SerializationContext
	if q, ok := res.FirstQuery(); ok {
		queryContext = q.NormalizationContext
	}
	useWrappedType := !queryContext.Equal(op.NormalizationContext)

	fields := graphql.Fields{}
	if !op.Output.Disabled() {
		wrappedOp := op
		if !useWrappedType {
			if item, ok := res.Operation(metadata.OperationItemQuery); ok {
				wrappedOp = item
			}
		}
		key := naming.LcFirst(wrappedOp.ShortName)
		fields[key] = &graphql.Field{
			Name: key,
			Type: b.ResourceObjectType(res, wrappedOp, false, true, depth),
		}
	}
	if op.IsSubscription() {
		fields["clientSubscriptionId"] = &graphql.Field{Name: "clientSubscriptionId", Type: graphql.String}
		if op.Mercure && !useWrappedType {
			fields["mercureUrl"] = &graphql.Field{Name: "mercureUrl", Type: graphql.String}
		}
		return fields, nil
	}
	fields["clientMutationId"] = &graphql.Field{Name: "clientMutationId", Type: graphql.String}
	return fields, nil
}

// EnumType returns the enum type of op's class, keyed by op's short name.
func (b *TypeBuilder) EnumType(op *metadata.Operation) (graphql.Type, error) {
	if t, err := b.registry.Get(op.ShortName); err == nil {
		return t, nil
	}
	values, err := b.fields.GetEnumFields(op.Class)
	if err != nil {
		return nil, err
	}
	description := op.Description
	if e, ok := b.meta.Enum(op.Class); ok && description == "" {
		description = e.Description
	}
	t := graphql.NewEnum(graphql.EnumConfig{
		Name:        op.ShortName,
		Description: description,
		Values:      values,
	})
	b.registry.Set(op.ShortName, t)
	return t, nil
}

func argumentFields(args graphql.FieldConfigArgument) graphql.Fields {
	fields := make(graphql.Fields, len(args))
	for name, a := range args {
		fields[name] = &graphql.Field{Name: name, Type: a.Type, Description: a.Description}
	}
	return fields
}

func inputFields(fields graphql.Fields) graphql.InputObjectConfigFieldMap {
	out := make(graphql.InputObjectConfigFieldMap, len(fields))
	for name, f := range fields {
		out[name] = &graphql.InputObjectFieldConfig{Type: f.Type, Description: f.Description}
	}
	return out
}
