package schema

import (
	"sort"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/filter"
	"github.com/hanpama/resourcegraph/internal/metadata"
)

// filterArgs adds the arguments of op's filters to args. A plain key becomes
// a scalar argument, "prop[]" becomes "prop_list", and "prop[sub]" groups
// "sub" into a list of an input type named after the resource and prop.
// Dots in keys are replaced by the nesting separator. Existing arguments are
// never replaced.
func (f *FieldsBuilder) filterArgs(args graphql.FieldConfigArgument, resourceClass string, op *metadata.Operation) (graphql.FieldConfigArgument, error) {
	if op == nil || len(op.Filters) == 0 {
		return args, nil
	}

	nested := map[string]graphql.InputObjectConfigFieldMap{}
	var nestedOrder []string
	for _, id := range op.Filters {
		flt, ok := f.filters.Get(id)
		if !ok {
			return nil, errMissingFilter(id, op.Name, op.ShortName)
		}
		descriptions := flt.Describe(resourceClass)
		keys := make([]string, 0, len(descriptions))
		for key := range descriptions {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			gqlType, err := f.convertType(filterType(descriptions[key]), true, op, op, resourceClass, resourceClass, "", 0)
			if err != nil {
				return nil, err
			}
			if gqlType == nil {
				continue
			}
			if trimmed, ok := strings.CutSuffix(key, "[]"); ok {
				key = trimmed + "_list"
				gqlType = graphql.NewList(gqlType)
			}
			top, path := splitFilterKey(key, f.separator)
			if _, exists := args[top]; exists {
				continue
			}
			if len(path) == 0 {
				args[top] = &graphql.ArgumentConfig{Type: gqlType}
				continue
			}
			fields, ok := nested[top]
			if !ok {
				fields = graphql.InputObjectConfigFieldMap{}
				nested[top] = fields
				nestedOrder = append(nestedOrder, top)
			}
			sub := strings.Join(path, f.separator)
			if _, exists := fields[sub]; !exists {
				fields[sub] = &graphql.InputObjectFieldConfig{Type: gqlType}
			}
		}
	}

	for _, top := range nestedOrder {
		if _, exists := args[top]; exists {
			continue
		}
		name := op.ShortName + "Filter_" + top
		t, err := f.types.registry.Get(name)
		if err != nil {
			t = graphql.NewInputObject(graphql.InputObjectConfig{
				Name:   name,
				Fields: nested[top],
			})
			f.types.registry.Set(name, t)
		}
		args[top] = &graphql.ArgumentConfig{Type: graphql.NewList(t)}
	}
	return args, nil
}

func filterType(d filter.Description) *metadata.Type {
	if b, ok := metadata.LookupBuiltin(d.Type); ok {
		return metadata.Scalar(b, !d.Required)
	}
	return metadata.Object(d.Type, !d.Required)
}

// splitFilterKey splits "a.b[c][d]" into "a__b" and ["c", "d"].
func splitFilterKey(key, separator string) (string, []string) {
	key = strings.ReplaceAll(key, ".", separator)
	i := strings.IndexByte(key, '[')
	if i <= 0 {
		return key, nil
	}
	top, rest := key[:i], key[i:]
	var path []string
	for strings.HasPrefix(rest, "[") {
		j := strings.IndexByte(rest, ']')
		if j < 0 {
			break
		}
		if seg := rest[1:j]; seg != "" {
			path = append(path, seg)
		}
		rest = rest[j+1:]
	}
	return top, path
}
