package schema

import "fmt"

type SchemaErrorKind int

const (
	// the offset does not name any column
	UnknownOffset SchemaErrorKind = iota
	// the offset is given twice or names more than one column
	DuplicateOffset
)

func (k SchemaErrorKind) String() string {
	switch k {
	case UnknownOffset:
		return "unknown offset"
	case DuplicateOffset:
		return "duplicate offset"
	}
	return "schema error"
}

// SchemaError is raised while a plan tree is built, never while it runs
type SchemaError struct {
	Kind   SchemaErrorKind
	Offset string
}

func NewSchemaError(kind SchemaErrorKind, offset string) *SchemaError {
	return &SchemaError{kind, offset}
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.Offset)
}
