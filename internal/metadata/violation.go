package metadata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Violation is one problem found while loading metadata documents.
type Violation struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationError collects every violation of a load.
type ValidationError []*Violation

func (e ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("violations found:\n")
	for _, v := range e {
		b.WriteString("- ")
		b.WriteString(v.Message)
		if v.File != "" {
			fmt.Fprintf(&b, " %s:%d:%d", v.File, v.Line, v.Column)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func violationAt(file string, node *yaml.Node, format string, args ...any) *Violation {
	v := &Violation{Message: fmt.Sprintf(format, args...), File: file}
	if node != nil {
		v.Line = node.Line
		v.Column = node.Column
	}
	return v
}

func violationMissingKey(file string, node *yaml.Node, what, key string) *Violation {
	return violationAt(file, node, "%s is missing required key %q", what, key)
}

func violationDuplicate(file string, node *yaml.Node, what, name string) *Violation {
	return violationAt(file, node, "duplicate %s %q", what, name)
}

func violationUnknownKind(file string, node *yaml.Node, kind, operation string) *Violation {
	return violationAt(file, node, "unknown kind %q for operation %q", kind, operation)
}

func violationUnknownPagination(file string, node *yaml.Node, value, owner string) *Violation {
	return violationAt(file, node, "unknown pagination type %q in %s; expected %q or %q", value, owner, PaginationCursor, PaginationPage)
}

func violationInvalidType(file string, node *yaml.Node, property string, err error) *Violation {
	return violationAt(file, node, "property %q: %v", property, err)
}
