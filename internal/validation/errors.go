package validation

import (
	"sort"
	"strings"
)

type FieldError struct {
	Field   Field
	Message string
}

func (e FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// Errors holds the inline message of every rejected field.
type Errors map[Field]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[Field(field)])
	}

	return strings.Join(parts, " and ")
}

func (e Errors) add(err FieldError) {
	e[err.Field] = err.Message
}
