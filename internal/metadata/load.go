package metadata

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterDeclaration names a filter implementation and its configuration.
type FilterDeclaration struct {
	ID         string
	Type       string            `yaml:"type"`
	Properties map[string]string `yaml:"properties"`
}

// Document is the result of loading every metadata document.
type Document struct {
	Catalog *Catalog
	Filters []FilterDeclaration
}

type documentFile struct {
	Resources []yaml.Node                  `yaml:"resources"`
	Classes   []yaml.Node                  `yaml:"classes"`
	Enums     []yaml.Node                  `yaml:"enums"`
	Filters   map[string]FilterDeclaration `yaml:"filters"`
}

type resourceDoc struct {
	Class                  string                `yaml:"class"`
	ShortName              string                `yaml:"shortName"`
	Description            string                `yaml:"description"`
	NormalizationContext   *SerializationContext `yaml:"normalizationContext"`
	DenormalizationContext *SerializationContext `yaml:"denormalizationContext"`
	Filters                []string              `yaml:"filters"`
	PaginationType         string                `yaml:"paginationType"`
	Operations             []yaml.Node           `yaml:"operations"`
	Fields                 map[string]fieldDoc   `yaml:"fields"`
	Properties             []yaml.Node           `yaml:"properties"`
}

type classDoc struct {
	Class      string      `yaml:"class"`
	Properties []yaml.Node `yaml:"properties"`
}

type fieldDoc struct {
	Name string         `yaml:"name"`
	Type string         `yaml:"type"`
	Args map[string]Arg `yaml:"args"`
}

type paginationDoc struct {
	Enabled             *bool  `yaml:"enabled"`
	Type                string `yaml:"type"`
	ClientItemsPerPage  *bool  `yaml:"clientItemsPerPage"`
	ItemsPerPage        int    `yaml:"itemsPerPage"`
	MaximumItemsPerPage int    `yaml:"maximumItemsPerPage"`
}

type ioDoc struct {
	Class *string `yaml:"class"`
}

type operationDoc struct {
	Name                   string                `yaml:"name"`
	Kind                   string                `yaml:"kind"`
	Class                  string                `yaml:"class"`
	ShortName              string                `yaml:"shortName"`
	Description            string                `yaml:"description"`
	DeprecationReason      string                `yaml:"deprecationReason"`
	NormalizationContext   *SerializationContext `yaml:"normalizationContext"`
	DenormalizationContext *SerializationContext `yaml:"denormalizationContext"`
	Filters                []string              `yaml:"filters"`
	Pagination             *paginationDoc        `yaml:"pagination"`
	Args                   map[string]Arg        `yaml:"args"`
	ExtraArgs              map[string]Arg        `yaml:"extraArgs"`
	Resolver               string                `yaml:"resolver"`
	Nested                 bool                  `yaml:"nested"`
	Mercure                bool                  `yaml:"mercure"`
	Input                  *ioDoc                `yaml:"input"`
	Output                 *ioDoc                `yaml:"output"`
}

type propertyDoc struct {
	Name              string   `yaml:"name"`
	Type              string   `yaml:"type"`
	Readable          *bool    `yaml:"readable"`
	Writable          *bool    `yaml:"writable"`
	ReadableLink      bool     `yaml:"readableLink"`
	WritableLink      bool     `yaml:"writableLink"`
	Identifier        bool     `yaml:"identifier"`
	Description       string   `yaml:"description"`
	DeprecationReason string   `yaml:"deprecationReason"`
	Groups            []string `yaml:"groups"`
}

type enumDoc struct {
	Class       string `yaml:"class"`
	ShortName   string `yaml:"shortName"`
	Description string `yaml:"description"`
	Cases       []struct {
		Name              string `yaml:"name"`
		Value             any    `yaml:"value"`
		Description       string `yaml:"description"`
		DeprecationReason string `yaml:"deprecationReason"`
	} `yaml:"cases"`
}

// Load reads every document of disc into a single Document.
func Load(ctx context.Context, disc Discovery) (*Document, error) {
	names, err := disc.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list metadata documents: %w", err)
	}
	l := &loader{doc: &Document{Catalog: NewCatalog()}, filters: map[string]bool{}}
	for _, name := range names {
		content, err := disc.ReadDocument(ctx, name)
		if err != nil {
			return nil, err
		}
		l.parse(name, content)
	}
	if len(l.violations) > 0 {
		return nil, l.violations
	}
	return l.doc, nil
}

// LoadPath loads the metadata file or directory at path.
func LoadPath(ctx context.Context, path string) (*Document, error) {
	disc, err := NewFileSystemDiscovery(path)
	if err != nil {
		return nil, err
	}
	return Load(ctx, disc)
}

type loader struct {
	doc        *Document
	filters    map[string]bool
	violations ValidationError
}

func (l *loader) report(v *Violation) { l.violations = append(l.violations, v) }

func (l *loader) parse(file string, content []byte) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		l.report(&Violation{Message: err.Error(), File: file})
		return
	}
	if len(root.Content) == 0 {
		return
	}
	var f documentFile
	if err := root.Content[0].Decode(&f); err != nil {
		l.report(violationAt(file, root.Content[0], "%v", err))
		return
	}
	ids := make([]string, 0, len(f.Filters))
	for id := range f.Filters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		decl := f.Filters[id]
		decl.ID = id
		if l.filters[id] {
			l.report(violationDuplicate(file, root.Content[0], "filter", id))
			continue
		}
		l.filters[id] = true
		l.doc.Filters = append(l.doc.Filters, decl)
	}
	for i := range f.Enums {
		l.parseEnum(file, &f.Enums[i])
	}
	for i := range f.Classes {
		l.parseClass(file, &f.Classes[i])
	}
	for i := range f.Resources {
		l.parseResource(file, &f.Resources[i])
	}
}

func (l *loader) parseEnum(file string, node *yaml.Node) {
	var d enumDoc
	if err := node.Decode(&d); err != nil {
		l.report(violationAt(file, node, "%v", err))
		return
	}
	if d.Class == "" {
		l.report(violationMissingKey(file, node, "enum", "class"))
		return
	}
	if _, ok := l.doc.Catalog.Enum(d.Class); ok {
		l.report(violationDuplicate(file, node, "enum", d.Class))
		return
	}
	e := &Enum{Class: d.Class, ShortName: d.ShortName, Description: d.Description}
	for _, c := range d.Cases {
		value := c.Value
		if value == nil {
			value = c.Name
		}
		e.Cases = append(e.Cases, EnumCase{
			Name:              c.Name,
			Value:             value,
			Description:       c.Description,
			DeprecationReason: c.DeprecationReason,
		})
	}
	l.doc.Catalog.AddEnum(e)
}

func (l *loader) parseClass(file string, node *yaml.Node) {
	var d classDoc
	if err := node.Decode(&d); err != nil {
		l.report(violationAt(file, node, "%v", err))
		return
	}
	if d.Class == "" {
		l.report(violationMissingKey(file, node, "class", "class"))
		return
	}
	l.parseProperties(file, d.Class, d.Properties)
}

func (l *loader) parseResource(file string, node *yaml.Node) {
	var d resourceDoc
	if err := node.Decode(&d); err != nil {
		l.report(violationAt(file, node, "%v", err))
		return
	}
	if d.Class == "" {
		l.report(violationMissingKey(file, node, "resource", "class"))
		return
	}
	if l.doc.Catalog.IsResourceClass(d.Class) {
		l.report(violationDuplicate(file, node, "resource", d.Class))
		return
	}
	if d.PaginationType != "" && d.PaginationType != PaginationCursor && d.PaginationType != PaginationPage {
		l.report(violationUnknownPagination(file, node, d.PaginationType, "resource "+d.Class))
	}

	r := &Resource{Class: d.Class, ShortName: d.ShortName, Description: d.Description}
	if len(d.Fields) > 0 {
		r.Fields = make(map[string]FieldConfig, len(d.Fields))
		for name, f := range d.Fields {
			r.Fields[name] = FieldConfig{Name: f.Name, Type: f.Type, Args: f.Args}
		}
	}

	seen := map[string]bool{}
	for i := range d.Operations {
		opNode := &d.Operations[i]
		op, ok := l.parseOperation(file, opNode, &d)
		if !ok {
			continue
		}
		if seen[op.Name] {
			l.report(violationDuplicate(file, opNode, "operation", op.Name))
			continue
		}
		seen[op.Name] = true
		r.Operations = append(r.Operations, op)
	}
	if len(d.Operations) == 0 {
		r.Operations = DefaultOperations()
		for _, op := range r.Operations {
			inheritResourceDefaults(op, &d)
		}
	}

	l.doc.Catalog.AddResource(r)
	l.parseProperties(file, d.Class, d.Properties)
}

func (l *loader) parseOperation(file string, node *yaml.Node, res *resourceDoc) (*Operation, bool) {
	var d operationDoc
	if err := node.Decode(&d); err != nil {
		l.report(violationAt(file, node, "%v", err))
		return nil, false
	}
	if d.Name == "" {
		l.report(violationMissingKey(file, node, "operation", "name"))
		return nil, false
	}
	kind, ok := operationKind(d.Kind, d.Name)
	if !ok {
		l.report(violationUnknownKind(file, node, d.Kind, d.Name))
		return nil, false
	}
	op := &Operation{
		Kind:                   kind,
		Name:                   d.Name,
		Class:                  d.Class,
		ShortName:              d.ShortName,
		Description:            d.Description,
		DeprecationReason:      d.DeprecationReason,
		NormalizationContext:   d.NormalizationContext,
		DenormalizationContext: d.DenormalizationContext,
		Filters:                d.Filters,
		Args:                   d.Args,
		ExtraArgs:              d.ExtraArgs,
		Resolver:               d.Resolver,
		Nested:                 d.Nested,
		Mercure:                d.Mercure,
	}
	if p := d.Pagination; p != nil {
		if p.Type != "" && p.Type != PaginationCursor && p.Type != PaginationPage {
			l.report(violationUnknownPagination(file, node, p.Type, "operation "+d.Name))
		}
		op.PaginationEnabled = p.Enabled
		op.PaginationType = p.Type
		op.PaginationClientItemsPerPage = p.ClientItemsPerPage
		op.PaginationItemsPerPage = p.ItemsPerPage
		op.PaginationMaximumItemsPerPage = p.MaximumItemsPerPage
	}
	if d.Input != nil {
		op.Input = ioFromDoc(d.Input)
	}
	if d.Output != nil {
		op.Output = ioFromDoc(d.Output)
	}
	inheritResourceDefaults(op, res)
	return op, true
}

func inheritResourceDefaults(op *Operation, res *resourceDoc) {
	if op.NormalizationContext == nil {
		op.NormalizationContext = res.NormalizationContext
	}
	if op.DenormalizationContext == nil {
		op.DenormalizationContext = res.DenormalizationContext
	}
	if op.Filters == nil && op.Kind == KindQueryCollection {
		op.Filters = res.Filters
	}
	if op.PaginationType == "" {
		op.PaginationType = res.PaginationType
	}
}

func ioFromDoc(d *ioDoc) *IO {
	if d.Class == nil {
		return &IO{}
	}
	return &IO{Class: *d.Class}
}

func operationKind(kind, name string) (OperationKind, bool) {
	if kind != "" {
		return ParseOperationKind(kind)
	}
	switch {
	case name == OperationItemQuery:
		return KindQuery, true
	case name == OperationCollectionQuery:
		return KindQueryCollection, true
	case name == OperationCreate, name == OperationUpdate, name == OperationDelete:
		return KindMutation, true
	case strings.HasSuffix(name, "_subscription"):
		return KindSubscription, true
	}
	return 0, false
}

func (l *loader) parseProperties(file, class string, nodes []yaml.Node) {
	existing, _ := l.doc.Catalog.PropertyNames(class)
	seen := make(map[string]bool, len(existing))
	for _, name := range existing {
		seen[name] = true
	}
	for i := range nodes {
		node := &nodes[i]
		var d propertyDoc
		if err := node.Decode(&d); err != nil {
			l.report(violationAt(file, node, "%v", err))
			continue
		}
		if d.Name == "" {
			l.report(violationMissingKey(file, node, "property of "+class, "name"))
			continue
		}
		if seen[d.Name] {
			l.report(violationDuplicate(file, node, "property of "+class, d.Name))
			continue
		}
		seen[d.Name] = true
		p := &Property{
			Name:              d.Name,
			Readable:          d.Readable == nil || *d.Readable,
			Writable:          d.Writable == nil || *d.Writable,
			ReadableLink:      d.ReadableLink,
			WritableLink:      d.WritableLink,
			Identifier:        d.Identifier,
			Description:       d.Description,
			DeprecationReason: d.DeprecationReason,
			Groups:            d.Groups,
		}
		if d.Type != "" {
			types, err := ParseTypes(d.Type)
			if err != nil {
				l.report(violationInvalidType(file, node, d.Name, err))
				continue
			}
			p.Types = types
		}
		l.doc.Catalog.AddProperties(class, p)
	}
}
