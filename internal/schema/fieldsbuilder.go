package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/filter"
	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/naming"
	"github.com/hanpama/resourcegraph/internal/pagination"
	"github.com/hanpama/resourcegraph/internal/resolver"
)

// DefaultNestingSeparator joins nested filter paths into argument names.
const DefaultNestingSeparator = "__"

// FieldsBuilder synthesizes the field maps of root types and resource types.
type FieldsBuilder struct {
	meta      metadata.Source
	types     *TypeBuilder
	converter TypeConverter
	filters   filter.Locator
	names     naming.NameConverter
	resolvers resolver.Factories
	policy    pagination.Policy
	separator string
}

// FieldsBuilderConfig carries the collaborators of a FieldsBuilder.
type FieldsBuilderConfig struct {
	Metadata         metadata.Source
	Types            *TypeBuilder
	Converter        TypeConverter
	Filters          filter.Locator
	NameConverter    naming.NameConverter
	Resolvers        resolver.Factories
	Pagination       pagination.Policy
	NestingSeparator string
}

// NewFieldsBuilder creates a FieldsBuilder.
func NewFieldsBuilder(cfg FieldsBuilderConfig) *FieldsBuilder {
	f := &FieldsBuilder{
		meta:      cfg.Metadata,
		types:     cfg.Types,
		converter: cfg.Converter,
		filters:   cfg.Filters,
		names:     cfg.NameConverter,
		resolvers: cfg.Resolvers,
		policy:    cfg.Pagination,
		separator: cfg.NestingSeparator,
	}
	if f.names == nil {
		f.names = naming.Identity
	}
	if f.filters == nil {
		f.filters = filter.NewRegistry()
	}
	if f.separator == "" {
		f.separator = DefaultNestingSeparator
	}
	return f
}

// GetNodeQueryFields returns the Relay node field.
func (f *FieldsBuilder) GetNodeQueryFields() graphql.Fields {
	op := &metadata.Operation{Kind: metadata.KindQuery, Name: metadata.OperationItemQuery}
	return graphql.Fields{
		"node": &graphql.Field{
			Name: "node",
			Type: f.types.NodeInterface(),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: resolveWith(f.resolvers.Item, "", "", op),
		},
	}
}

// GetItemQueryFields returns the root field of an item query.
func (f *FieldsBuilder) GetItemQueryFields(resourceClass string, op *metadata.Operation, cfg metadata.FieldConfig) (graphql.Fields, error) {
	if op.Nested {
		return graphql.Fields{}, nil
	}
	name := cfg.Name
	if name == "" {
		name = op.ShortName
		if op.Name != metadata.OperationItemQuery {
			name = op.Name + op.ShortName
		}
		name = naming.LcFirst(name)
	}

	field, err := f.fieldConfiguration("", op.Description, op.DeprecationReason, metadata.Object(resourceClass, true), resourceClass, false, op, 0)
	if err != nil || field == nil {
		return graphql.Fields{}, err
	}
	args, err := f.ResolveResourceArgs(cfg.Args, op)
	if err != nil {
		return nil, err
	}
	switch {
	case len(args) > 0:
		field.Args = args
	case cfg.Args != nil:
		field.Args = graphql.FieldConfigArgument{}
	default:
		field.Args = graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		}
	}
	if err := f.mergeExtraArgs(field, op); err != nil {
		return nil, err
	}
	if err := f.overrideType(field, cfg); err != nil {
		return nil, err
	}
	field.Name = name
	return graphql.Fields{name: field}, nil
}

// GetCollectionQueryFields returns the root field of a collection query.
func (f *FieldsBuilder) GetCollectionQueryFields(resourceClass string, op *metadata.Operation, cfg metadata.FieldConfig) (graphql.Fields, error) {
	if op.Nested {
		return graphql.Fields{}, nil
	}
	name := cfg.Name
	if name == "" {
		name = op.ShortName
		if op.Name != metadata.OperationCollectionQuery {
			name = op.Name + op.ShortName
		}
		name = naming.Pluralize(naming.LcFirst(name))
	}

	t := metadata.CollectionOf(metadata.Object(resourceClass, false), true)
	field, err := f.fieldConfiguration("", op.Description, op.DeprecationReason, t, resourceClass, false, op, 0)
	if err != nil || field == nil {
		return graphql.Fields{}, err
	}
	args, err := f.ResolveResourceArgs(cfg.Args, op)
	if err != nil {
		return nil, err
	}
	switch {
	case len(args) > 0:
		field.Args = args
	case cfg.Args != nil:
		field.Args = graphql.FieldConfigArgument{}
	}
	if err := f.mergeExtraArgs(field, op); err != nil {
		return nil, err
	}
	if err := f.overrideType(field, cfg); err != nil {
		return nil, err
	}
	field.Name = name
	return graphql.Fields{name: field}, nil
}

// GetMutationFields returns the root field of a mutation.
func (f *FieldsBuilder) GetMutationFields(resourceClass string, op *metadata.Operation) (graphql.Fields, error) {
	name := op.Name + op.ShortName
	description := op.Description
	if description == "" {
		description = fmt.Sprintf("%ss a %s.", naming.UcFirst(op.Name), op.ShortName)
	}
	field, err := f.fieldConfiguration("", description, op.DeprecationReason, metadata.Object(resourceClass, true), resourceClass, false, op, 0)
	if err != nil || field == nil {
		return graphql.Fields{}, err
	}
	if err := f.attachInput(field, resourceClass, op); err != nil {
		return nil, err
	}
	field.Name = name
	return graphql.Fields{name: field}, nil
}

// GetSubscriptionFields returns the root field of a subscription. Only
// subscriptions pushed over Mercure get one.
func (f *FieldsBuilder) GetSubscriptionFields(resourceClass string, op *metadata.Operation) (graphql.Fields, error) {
	if !op.Mercure {
		return graphql.Fields{}, nil
	}
	name := strings.TrimSuffix(op.Name, "_subscription") + op.ShortName + "Subscribe"
	description := op.Description
	if description == "" {
		description = fmt.Sprintf("Subscribes to the action event of a %s.", op.ShortName)
	}
	field, err := f.fieldConfiguration("", description, op.DeprecationReason, metadata.Object(resourceClass, true), resourceClass, false, op, 0)
	if err != nil || field == nil {
		return graphql.Fields{}, err
	}
	if err := f.attachInput(field, resourceClass, op); err != nil {
		return nil, err
	}
	field.Name = name
	return graphql.Fields{name: field}, nil
}

func (f *FieldsBuilder) attachInput(field *graphql.Field, resourceClass string, op *metadata.Operation) error {
	input, err := f.converter.ConvertType(metadata.Object(resourceClass, false), true, op, resourceClass, resourceClass, "", 0)
	if err != nil {
		return err
	}
	if input != nil {
		field.Args = graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: input}}
	}
	return nil
}

func (f *FieldsBuilder) mergeExtraArgs(field *graphql.Field, op *metadata.Operation) error {
	extra, err := f.ResolveResourceArgs(op.ExtraArgs, op)
	if err != nil {
		return err
	}
	if len(extra) > 0 && field.Args == nil {
		field.Args = graphql.FieldConfigArgument{}
	}
	for name, a := range extra {
		field.Args[name] = a
	}
	return nil
}

func (f *FieldsBuilder) overrideType(field *graphql.Field, cfg metadata.FieldConfig) error {
	if cfg.Type == "" {
		return nil
	}
	t, err := f.converter.ResolveType(cfg.Type)
	if err != nil {
		return err
	}
	field.Type = t
	return nil
}

// GetResourceObjectTypeFields returns the fields of the type resourceClass is
// exposed as through op. io overrides the serialized class; a disabled io
// leaves only the client id.
func (f *FieldsBuilder) GetResourceObjectTypeFields(resourceClass string, op *metadata.Operation, input bool, depth int, io *metadata.IO) (graphql.Fields, error) {
	fields := graphql.Fields{}
	idField := func() *graphql.Field {
		return &graphql.Field{Name: "id", Type: graphql.NewNonNull(graphql.ID)}
	}
	clientMutationID := func() *graphql.Field {
		return &graphql.Field{Name: "clientMutationId", Type: graphql.String}
	}

	if io.Disabled() {
		if input {
			fields["clientMutationId"] = clientMutationID()
		}
		return fields, nil
	}
	if input && op.IsSubscription() {
		fields["id"] = idField()
		fields["clientSubscriptionId"] = &graphql.Field{Name: "clientSubscriptionId", Type: graphql.String}
		return fields, nil
	}
	if op.IsMutation() && op.Name == metadata.OperationDelete {
		fields["id"] = idField()
		if input {
			fields["clientMutationId"] = clientMutationID()
		}
		return fields, nil
	}

	if !input || (op.Resolver == "" && op.Name != metadata.OperationCreate) {
		fields["id"] = idField()
	}
	if input && depth >= 1 {
		fields["id"] = &graphql.Field{Name: "id", Type: graphql.ID}
	}

	class := resourceClass
	if io != nil && io.Class != "" {
		class = io.Class
	}
	names, err := f.meta.PropertyNames(class)
	if err != nil {
		return nil, err
	}
	opts := metadata.OptionsFor(op)
	for _, property := range names {
		p, err := f.meta.Property(class, property, opts)
		if err != nil {
			return nil, err
		}
		if len(p.Types) == 0 || (!input && !p.Readable) || (input && !p.Writable) {
			continue
		}
		for _, t := range p.Types {
			field, err := f.fieldConfiguration(property, p.Description, p.DeprecationReason, t, class, input, op, depth+1)
			if err != nil {
				return nil, err
			}
			if field == nil {
				continue
			}
			name := f.names.Normalize(property, class)
			if property == "id" {
				name = "_id"
			}
			field.Name = name
			fields[name] = field
			break
		}
	}

	if input && depth == 0 && op.IsMutation() {
		fields["clientMutationId"] = clientMutationID()
	}
	return fields, nil
}

// GetEnumFields returns the values of a backed enum keyed by case name.
func (f *FieldsBuilder) GetEnumFields(enumClass string) (graphql.EnumValueConfigMap, error) {
	e, ok := f.meta.Enum(enumClass)
	if !ok {
		return nil, fmt.Errorf("enum %q not found", enumClass)
	}
	values := make(graphql.EnumValueConfigMap, len(e.Cases))
	for _, c := range e.Cases {
		values[c.Name] = &graphql.EnumValueConfig{
			Value:             c.Value,
			Description:       c.Description,
			DeprecationReason: c.DeprecationReason,
		}
	}
	return values, nil
}

// ResolveResourceArgs resolves user-declared arguments. Every argument must
// declare a type.
func (f *FieldsBuilder) ResolveResourceArgs(args map[string]metadata.Arg, op *metadata.Operation) (graphql.FieldConfigArgument, error) {
	out := make(graphql.FieldConfigArgument, len(args))
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := args[name]
		if a.Type == "" {
			return nil, errMissingArgType(name, op.Name, op.ShortName)
		}
		t, err := f.converter.ResolveType(a.Type)
		if err != nil {
			return nil, err
		}
		out[name] = &graphql.ArgumentConfig{
			Type:         t,
			Description:  a.Description,
			DefaultValue: a.DefaultValue,
		}
	}
	return out, nil
}

// fieldConfiguration builds the field of a property, or of a root operation
// when property is empty. It returns nil when the type has no GraphQL
// counterpart.
func (f *FieldsBuilder) fieldConfiguration(property, description, deprecationReason string, t *metadata.Type, rootClass string, input bool, rootOp *metadata.Operation, depth int) (*graphql.Field, error) {
	if rootOp.IsSubscription() && !rootOp.Mercure && property == "" {
		return nil, nil
	}
	collection := IsCollection(t)
	resourceClass := t.MemberClass()
	isResource := resourceClass != "" && f.meta.IsResourceClass(resourceClass)

	resourceOp := rootOp
	if isResource && depth > 0 {
		resourceOp = nil
		if res, err := f.meta.Resource(resourceClass); err == nil {
			first, second := metadata.OperationItemQuery, metadata.OperationCollectionQuery
			if collection {
				first, second = second, first
			}
			if op, ok := res.Operation(first); ok {
				resourceOp = op
			} else if op, ok := res.Operation(second); ok {
				resourceOp = op
			}
		}
	}

	gqlType, err := f.convertType(t, input, resourceOp, rootOp, resourceClass, rootClass, property, depth)
	if err != nil || gqlType == nil {
		return nil, err
	}

	var args graphql.FieldConfigArgument
	if !input && !rootOp.IsMutation() && !rootOp.IsSubscription() && isResource && collection {
		args = graphql.FieldConfigArgument{}
		if f.policy.IsEnabled(resourceOp) {
			args = f.paginationArgs(resourceOp)
		}
		if args, err = f.filterArgs(args, resourceClass, resourceOp); err != nil {
			return nil, err
		}
	}

	var resolve graphql.FieldResolveFn
	switch {
	case input || !isResource:
	case (rootOp.IsMutation() || rootOp.IsSubscription()) && depth <= 0:
		if rootOp.IsMutation() {
			resolve = resolveWith(f.resolvers.Mutation, resourceClass, rootClass, rootOp)
		} else {
			resolve = resolveWith(f.resolvers.Subscription, resourceClass, rootClass, rootOp)
		}
	case collection:
		resolve = resolveWith(f.resolvers.Collection, resourceClass, rootClass, resourceOp)
	default:
		resolve = resolveWith(f.resolvers.Item, resourceClass, rootClass, resourceOp)
	}

	return &graphql.Field{
		Name:              property,
		Type:              gqlType,
		Description:       description,
		DeprecationReason: deprecationReason,
		Args:              args,
		Resolve:           resolve,
	}, nil
}

func (f *FieldsBuilder) convertType(t *metadata.Type, input bool, resourceOp, rootOp *metadata.Operation, resourceClass, rootClass, property string, depth int) (graphql.Type, error) {
	gqlType, err := f.converter.ConvertType(t, input, rootOp, resourceClass, rootClass, property, depth)
	if err != nil || gqlType == nil {
		return nil, err
	}
	if IsCollection(t) {
		_, isEnum := f.meta.Enum(resourceClass)
		if !input && !isEnum && f.meta.IsResourceClass(resourceClass) && f.policy.IsEnabled(resourceOp) {
			return f.types.PaginatedCollectionType(gqlType, resourceOp), nil
		}
		return graphql.NewList(gqlType), nil
	}
	if _, ok := gqlType.(*graphql.NonNull); ok {
		return gqlType, nil
	}
	// Partial updates relax the update input itself, never the nested
	// inputs it embeds.
	if t.Nullable || (rootOp.IsMutation() && rootOp.Name == metadata.OperationUpdate && (!input || depth <= 1)) {
		return gqlType, nil
	}
	return graphql.NewNonNull(gqlType), nil
}

func (f *FieldsBuilder) paginationArgs(op *metadata.Operation) graphql.FieldConfigArgument {
	if f.policy.TypeOf(op) == metadata.PaginationPage {
		args := graphql.FieldConfigArgument{
			f.policy.PageParameter(): &graphql.ArgumentConfig{
				Type:        graphql.Int,
				Description: "Returns the current page.",
			},
		}
		if f.policy.ClientItemsPerPageOf(op) {
			args[f.policy.ItemsPerPageParameter()] = &graphql.ArgumentConfig{
				Type:        graphql.Int,
				Description: "Returns the number of items per page.",
			}
		}
		return args
	}
	return graphql.FieldConfigArgument{
		"first": &graphql.ArgumentConfig{
			Type:        graphql.Int,
			Description: "Returns the first n elements from the list.",
		},
		"last": &graphql.ArgumentConfig{
			Type:        graphql.Int,
			Description: "Returns the last n elements from the list.",
		},
		"before": &graphql.ArgumentConfig{
			Type:        graphql.String,
			Description: "Returns the elements in the list that come before the specified cursor.",
		},
		"after": &graphql.ArgumentConfig{
			Type:        graphql.String,
			Description: "Returns the elements in the list that come after the specified cursor.",
		},
	}
}

func resolveWith(factory resolver.Factory, resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn {
	if factory == nil {
		return nil
	}
	return factory.Resolver(resourceClass, rootClass, op)
}
