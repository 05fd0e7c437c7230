package inventory

import (
	"errors"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when an id does not resolve to a live record.
var ErrNotFound = errors.New("not found")

// ValidationError carries field-level messages for a rejected mutation.
// Keys are struct paths relative to the params ("Name", "Lines[2].Qty").
// Nothing is persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// newValidationError flattens validator.ValidationErrors into field keys
// relative to the params struct.
func newValidationError(err error) *ValidationError {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs {
			key := ve.StructNamespace()
			if i := strings.Index(key, "."); i >= 0 {
				key = key[i+1:]
			}

			fields[key] = ve.Tag()
		}
	} else {
		fields["params"] = err.Error()
	}

	return &ValidationError{Fields: fields}
}
