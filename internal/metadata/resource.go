package metadata

import "slices"

// OperationKind is the closed set of GraphQL operation shapes.
type OperationKind int

const (
	KindQuery OperationKind = iota
	KindQueryCollection
	KindMutation
	KindSubscription
)

func (k OperationKind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindQueryCollection:
		return "query_collection"
	case KindMutation:
		return "mutation"
	case KindSubscription:
		return "subscription"
	}
	return "unknown"
}

// ParseOperationKind maps a declared kind to an OperationKind.
func ParseOperationKind(s string) (OperationKind, bool) {
	switch s {
	case "query":
		return KindQuery, true
	case "query_collection", "collection":
		return KindQueryCollection, true
	case "mutation":
		return KindMutation, true
	case "subscription":
		return KindSubscription, true
	}
	return 0, false
}

// Well-known operation names.
const (
	OperationItemQuery       = "item_query"
	OperationCollectionQuery = "collection_query"
	OperationCreate          = "create"
	OperationUpdate          = "update"
	OperationDelete          = "delete"
)

// Pagination strategies.
const (
	PaginationCursor = "cursor"
	PaginationPage   = "page"
)

// SerializationContext scopes property metadata to serialization groups.
type SerializationContext struct {
	Groups []string `yaml:"groups"`
}

// Equal compares the group lists in order. A nil context equals an empty one.
func (c *SerializationContext) Equal(o *SerializationContext) bool {
	var a, b []string
	if c != nil {
		a = c.Groups
	}
	if o != nil {
		b = o.Groups
	}
	return slices.Equal(a, b)
}

// GroupList returns the groups or nil when the context is unset.
func (c *SerializationContext) GroupList() []string {
	if c == nil {
		return nil
	}
	return c.Groups
}

// IO overrides the class serialized for an operation's input or output.
// An IO with an empty Class means the operation has no body in that
// direction.
type IO struct {
	Class string `yaml:"class"`
}

// Disabled reports whether io explicitly suppresses the body.
func (io *IO) Disabled() bool { return io != nil && io.Class == "" }

// Arg is a user-declared field argument. Type uses the GraphQL type
// reference grammar and is resolved at schema build time.
type Arg struct {
	Type         string `yaml:"type"`
	Description  string `yaml:"description"`
	DefaultValue any    `yaml:"default"`
}

// Operation describes one GraphQL operation of a resource.
type Operation struct {
	Kind              OperationKind
	Name              string
	Class             string
	ShortName         string
	Description       string
	DeprecationReason string

	NormalizationContext   *SerializationContext
	DenormalizationContext *SerializationContext

	Filters []string

	PaginationEnabled             *bool
	PaginationType                string
	PaginationClientItemsPerPage  *bool
	PaginationItemsPerPage        int
	PaginationMaximumItemsPerPage int

	// Args replaces the default arguments. A non-nil empty map removes them.
	Args      map[string]Arg
	ExtraArgs map[string]Arg

	Resolver string
	Nested   bool
	Mercure  bool

	Input  *IO
	Output *IO
}

// IsMutation reports whether op is a mutation.
func (op *Operation) IsMutation() bool { return op != nil && op.Kind == KindMutation }

// IsSubscription reports whether op is a subscription.
func (op *Operation) IsSubscription() bool { return op != nil && op.Kind == KindSubscription }

// IsQuery reports whether op is an item or collection query.
func (op *Operation) IsQuery() bool {
	return op != nil && (op.Kind == KindQuery || op.Kind == KindQueryCollection)
}

// IsCollection reports whether op is a collection query.
func (op *Operation) IsCollection() bool { return op != nil && op.Kind == KindQueryCollection }

// Clone returns a shallow copy of op.
func (op *Operation) Clone() *Operation {
	c := *op
	return &c
}

// FieldConfig carries user-level overrides for a root field.
type FieldConfig struct {
	Name string
	Type string
	Args map[string]Arg
}

// Resource is a class exposed through GraphQL operations.
type Resource struct {
	Class       string
	ShortName   string
	Description string
	Operations  []*Operation
	// Fields holds per-operation root field overrides keyed by operation name.
	Fields map[string]FieldConfig
}

// Operation returns the operation registered under name.
func (r *Resource) Operation(name string) (*Operation, bool) {
	if r == nil {
		return nil, false
	}
	for _, op := range r.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}

// FirstQuery returns the first query that has no custom resolver.
func (r *Resource) FirstQuery() (*Operation, bool) {
	if r == nil {
		return nil, false
	}
	for _, op := range r.Operations {
		if op.IsQuery() && op.Resolver == "" {
			return op, true
		}
	}
	return nil, false
}

// FieldConfig returns the root field configuration for op, falling back to
// the operation's own argument override.
func (r *Resource) FieldConfig(op *Operation) FieldConfig {
	cfg := r.Fields[op.Name]
	if cfg.Args == nil {
		cfg.Args = op.Args
	}
	return cfg
}

// DefaultOperations returns the operations a resource gets when it declares
// none.
func DefaultOperations() []*Operation {
	return []*Operation{
		{Kind: KindQuery, Name: OperationItemQuery},
		{Kind: KindQueryCollection, Name: OperationCollectionQuery},
		{Kind: KindMutation, Name: OperationCreate},
		{Kind: KindMutation, Name: OperationUpdate},
		{Kind: KindMutation, Name: OperationDelete},
	}
}
