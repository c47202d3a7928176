// Package metadata describes resources, their operations and properties, and
// the collaborator contracts the schema engine reads them through.
package metadata

import "fmt"

// ResourceMetadataFactory lists resources and returns their descriptors.
type ResourceMetadataFactory interface {
	ResourceClasses() []string
	Resource(class string) (*Resource, error)
}

// ResourceClassResolver decides whether a class is a declared resource.
type ResourceClassResolver interface {
	IsResourceClass(class string) bool
}

// PropertyNameCollectionFactory lists the declared property names of a class
// in declaration order.
type PropertyNameCollectionFactory interface {
	PropertyNames(class string) ([]string, error)
}

// PropertyMetadataFactory returns property metadata scoped by opts.
type PropertyMetadataFactory interface {
	Property(class, name string, opts Options) (*Property, error)
}

// EnumMetadataFactory returns enum metadata for backed enum classes.
type EnumMetadataFactory interface {
	Enum(class string) (*Enum, bool)
}

// Source bundles every metadata collaborator.
type Source interface {
	ResourceMetadataFactory
	ResourceClassResolver
	PropertyNameCollectionFactory
	PropertyMetadataFactory
	EnumMetadataFactory
}

// ResourceNotFoundError is returned for classes that are not resources.
type ResourceNotFoundError struct {
	Class string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource %q not found", e.Class)
}

// PropertyNotFoundError is returned for undeclared properties.
type PropertyNotFoundError struct {
	Class    string
	Property string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property %q of class %q not found", e.Property, e.Class)
}
