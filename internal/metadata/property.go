package metadata

// Property describes one declared property of a class.
type Property struct {
	Name string
	// Types lists the declared types; a union declares more than one.
	Types []*Type

	Readable bool
	Writable bool
	// ReadableLink reports whether the relation is read as an IRI reference.
	ReadableLink bool
	// WritableLink reports whether the relation is written as an IRI
	// reference instead of an embedded input.
	WritableLink bool
	Identifier   bool

	Description       string
	DeprecationReason string

	// Groups lists the serialization groups the property belongs to.
	Groups []string
}

// Options scopes property metadata to serialization groups. Nil group lists
// leave the property unscoped.
type Options struct {
	NormalizationGroups   []string
	DenormalizationGroups []string
}

// OptionsFor returns the group scoping of op.
func OptionsFor(op *Operation) Options {
	if op == nil {
		return Options{}
	}
	return Options{
		NormalizationGroups:   op.NormalizationContext.GroupList(),
		DenormalizationGroups: op.DenormalizationContext.GroupList(),
	}
}

// scoped returns a copy of p with readability and writability restricted to
// the groups of opts.
func (p *Property) scoped(opts Options) *Property {
	c := *p
	if opts.NormalizationGroups != nil && !intersects(p.Groups, opts.NormalizationGroups) {
		c.Readable = false
	}
	if opts.DenormalizationGroups != nil && !intersects(p.Groups, opts.DenormalizationGroups) {
		c.Writable = false
	}
	return &c
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// EnumCase is one case of a backed enum.
type EnumCase struct {
	Name              string
	Value             any
	Description       string
	DeprecationReason string
}

// Enum describes a backed enum class.
type Enum struct {
	Class       string
	ShortName   string
	Description string
	Cases       []EnumCase
}
