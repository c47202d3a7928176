package metadata

import (
	"sync"

	"github.com/hanpama/resourcegraph/internal/naming"
)

// Catalog is an in-memory Source.
type Catalog struct {
	mu        sync.RWMutex
	order     []string
	resources map[string]*Resource
	props     map[string][]*Property
	enums     map[string]*Enum
}

var _ Source = (*Catalog)(nil)

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		resources: make(map[string]*Resource),
		props:     make(map[string][]*Property),
		enums:     make(map[string]*Enum),
	}
}

// AddResource registers r. A resource without operations receives the
// default set. Operations inherit the resource class and short name unless
// they set their own.
func (c *Catalog) AddResource(r *Resource) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.ShortName == "" {
		r.ShortName = naming.ShortName(r.Class)
	}
	if len(r.Operations) == 0 {
		r.Operations = DefaultOperations()
	}
	for _, op := range r.Operations {
		if op.Class == "" {
			op.Class = r.Class
		}
		if op.ShortName == "" {
			op.ShortName = r.ShortName
		}
	}
	if _, ok := c.resources[r.Class]; !ok {
		c.order = append(c.order, r.Class)
	}
	c.resources[r.Class] = r
	return c
}

// AddProperties appends declared properties to class. The class does not
// have to be a resource.
func (c *Catalog) AddProperties(class string, props ...*Property) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[class] = append(c.props[class], props...)
	return c
}

// AddEnum registers a backed enum.
func (c *Catalog) AddEnum(e *Enum) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.ShortName == "" {
		e.ShortName = naming.ShortName(e.Class)
	}
	c.enums[e.Class] = e
	return c
}

func (c *Catalog) ResourceClasses() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

func (c *Catalog) Resource(class string) (*Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.resources[class]
	if !ok {
		return nil, &ResourceNotFoundError{Class: class}
	}
	return r, nil
}

func (c *Catalog) IsResourceClass(class string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.resources[class]
	return ok
}

func (c *Catalog) PropertyNames(class string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	props := c.props[class]
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	return names, nil
}

func (c *Catalog) Property(class, name string, opts Options) (*Property, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.props[class] {
		if p.Name == name {
			return p.scoped(opts), nil
		}
	}
	return nil, &PropertyNotFoundError{Class: class, Property: name}
}

func (c *Catalog) Enum(class string) (*Enum, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.enums[class]
	return e, ok
}
