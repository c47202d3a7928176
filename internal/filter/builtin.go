package filter

import (
	"strings"

	"github.com/hanpama/resourcegraph/internal/metadata"
)

// SearchFilter matches properties by strategy. Properties maps a property
// path to its strategy; exact matches also accept a list of values.
type SearchFilter struct {
	Properties map[string]string
	Metadata   metadata.PropertyMetadataFactory
}

func (f *SearchFilter) Describe(resourceClass string) map[string]Description {
	out := make(map[string]Description, len(f.Properties)*2)
	for prop, strategy := range f.Properties {
		typ := builtinOf(f.Metadata, resourceClass, prop, metadata.BuiltinString)
		if typ != string(metadata.BuiltinInt) && typ != string(metadata.BuiltinFloat) && typ != string(metadata.BuiltinBool) {
			typ = string(metadata.BuiltinString)
		}
		out[prop] = Description{Type: typ}
		if strategy == "" || strategy == "exact" {
			out[prop+"[]"] = Description{Type: typ}
		}
	}
	return out
}

// BooleanFilter matches boolean properties.
type BooleanFilter struct {
	Properties []string
}

func (f *BooleanFilter) Describe(string) map[string]Description {
	out := make(map[string]Description, len(f.Properties))
	for _, prop := range f.Properties {
		out[prop] = Description{Type: string(metadata.BuiltinBool)}
	}
	return out
}

// DateFilter bounds date properties.
type DateFilter struct {
	Properties []string
}

var dateBounds = []string{"before", "strictly_before", "after", "strictly_after"}

func (f *DateFilter) Describe(string) map[string]Description {
	out := make(map[string]Description, len(f.Properties)*len(dateBounds))
	for _, prop := range f.Properties {
		for _, bound := range dateBounds {
			out[prop+"["+bound+"]"] = Description{Type: "DateTimeInterface"}
		}
	}
	return out
}

// RangeFilter bounds numeric properties.
type RangeFilter struct {
	Properties []string
}

var rangeBounds = []string{"between", "gt", "gte", "lt", "lte"}

func (f *RangeFilter) Describe(string) map[string]Description {
	out := make(map[string]Description, len(f.Properties)*len(rangeBounds))
	for _, prop := range f.Properties {
		for _, bound := range rangeBounds {
			out[prop+"["+bound+"]"] = Description{Type: string(metadata.BuiltinString)}
		}
	}
	return out
}

// OrderFilter sorts by properties.
type OrderFilter struct {
	Properties []string
}

func (f *OrderFilter) Describe(string) map[string]Description {
	out := make(map[string]Description, len(f.Properties))
	for _, prop := range f.Properties {
		out["order["+prop+"]"] = Description{Type: string(metadata.BuiltinString)}
	}
	return out
}

// ExistsFilter matches on null or non-null properties.
type ExistsFilter struct {
	Properties []string
}

func (f *ExistsFilter) Describe(string) map[string]Description {
	out := make(map[string]Description, len(f.Properties))
	for _, prop := range f.Properties {
		out["exists["+prop+"]"] = Description{Type: string(metadata.BuiltinBool)}
	}
	return out
}

// NumericFilter matches numeric properties.
type NumericFilter struct {
	Properties []string
	Metadata   metadata.PropertyMetadataFactory
}

func (f *NumericFilter) Describe(resourceClass string) map[string]Description {
	out := make(map[string]Description, len(f.Properties)*2)
	for _, prop := range f.Properties {
		typ := builtinOf(f.Metadata, resourceClass, prop, metadata.BuiltinInt)
		if typ != string(metadata.BuiltinFloat) {
			typ = string(metadata.BuiltinInt)
		}
		out[prop] = Description{Type: typ}
		out[prop+"[]"] = Description{Type: typ}
	}
	return out
}

// builtinOf follows a dotted property path and returns the builtin type of
// its last segment.
func builtinOf(meta metadata.PropertyMetadataFactory, class, path string, fallback metadata.Builtin) string {
	if meta == nil {
		return string(fallback)
	}
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		p, err := meta.Property(class, seg, metadata.Options{})
		if err != nil || len(p.Types) == 0 {
			return string(fallback)
		}
		t := p.Types[0]
		if i == len(segments)-1 {
			if t.Collection || t.Builtin == metadata.BuiltinObject {
				return string(fallback)
			}
			return string(t.Builtin)
		}
		class = t.MemberClass()
		if class == "" {
			return string(fallback)
		}
	}
	return string(fallback)
}
