package contributor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound reports that a field or dataset name did not resolve against
// the fetched project metadata.
var ErrNotFound = errors.New("not found")

// ErrFieldsNotFetched reports that an operation needed the project's field
// definitions before they were pulled from the platform.
var ErrFieldsNotFetched = errors.New("project fields have not been fetched")

// PreconditionError reports a required piece of session state that was not
// set before an operation that needs it. Field holds the human-readable
// name of the missing setting.
type PreconditionError struct {
	Field string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s is not set", e.Field)
}

// RaggedColumnsError reports that staged columns disagree on row count, so
// the upload would produce a ragged data object.
type RaggedColumnsError struct {
	Lengths map[string]int
}

func (e *RaggedColumnsError) Error() string {
	names := make([]string, 0, len(e.Lengths))
	for name := range e.Lengths {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, e.Lengths[name]))
	}

	return "staged columns have unequal lengths: " + strings.Join(parts, ", ")
}
